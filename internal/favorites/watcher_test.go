package favorites

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.toml")
	store := openStore(t, NewFileRepository(path))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch(ctx, store, path, 10*time.Millisecond, zerolog.Nop()) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	// Another process writes the file.
	other := NewFileRepository(path)
	require.NoError(t, other.Save(context.Background(), []string{"from-elsewhere"}))

	require.Eventually(t, func() bool {
		return store.Snapshot().Has("from-elsewhere")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.toml")
	store := openStore(t, NewFileRepository(path))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, store, path, zerolog.Nop()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
