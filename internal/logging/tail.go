package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

const tailChunk = 32 << 10

// Tail returns at most maxLines from the end of the file at path, oldest
// first. The file is read backwards in chunks so large logs cost only what is
// shown. A missing file yields no lines.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	return tailFrom(file, info.Size(), maxLines)
}

// tailFrom collects lines newest first from r, then reverses them.
func tailFrom(r io.ReaderAt, size int64, maxLines int) ([]string, error) {
	var (
		lines   []string
		partial []byte
		offset  = size
		atEnd   = true
	)
	buf := make([]byte, tailChunk)
	for offset > 0 && len(lines) < maxLines {
		n := int64(len(buf))
		if offset < n {
			n = offset
		}
		offset -= n
		if _, err := r.ReadAt(buf[:n], offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}

		data := append(append([]byte(nil), buf[:n]...), partial...)
		parts := bytes.Split(data, []byte{'\n'})
		partial = parts[0]
		if atEnd && len(parts[len(parts)-1]) == 0 && len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
		atEnd = false

		for i := len(parts) - 1; i >= 1 && len(lines) < maxLines; i-- {
			lines = append(lines, string(bytes.TrimSuffix(parts[i], []byte{'\r'})))
		}
	}
	if offset == 0 && len(lines) < maxLines && (len(partial) > 0 || size > 0 && !atEnd) {
		lines = append(lines, string(bytes.TrimSuffix(partial, []byte{'\r'})))
	}
	if len(lines) == 0 {
		return nil, nil
	}
	slices.Reverse(lines)
	return lines, nil
}
