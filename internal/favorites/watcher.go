package favorites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultWatchDebounce = 100 * time.Millisecond

// Reloader re-reads persisted favorites. Implemented by *Store.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// Watch reloads the store whenever the favorites file at path changes on disk,
// for example when another stash process toggles a favorite. It blocks until
// ctx is done.
func Watch(ctx context.Context, store Reloader, path string, logger zerolog.Logger) error {
	return watch(ctx, store, path, defaultWatchDebounce, logger)
}

func watch(ctx context.Context, store Reloader, path string, debounce time.Duration, logger zerolog.Logger) error {
	log := logger.With().Str("component", "favorites-watcher").Logger()

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Debug().Str("path", path).Msg("watching favorites file")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			changed, err := store.Reload(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Warn().Err(err).Msg("reload favorites failed")
				continue
			}
			if changed {
				log.Debug().Msg("favorites changed on disk")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}
