package favorites

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/fault"
	"github.com/five82/stash/internal/state"
)

// Store is the single writer of favorite membership. Readers get immutable
// Set snapshots through Snapshot or Observe.
type Store struct {
	repo Repository
	log  zerolog.Logger

	// slot serializes writers; acquiring it honours ctx.
	slot chan struct{}
	cell *state.Cell[Set]
}

// Open loads the persisted favorites and returns a ready Store.
func Open(ctx context.Context, repo Repository, logger zerolog.Logger) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("favorites repository is nil")
	}
	ids, err := repo.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.KindPersistence, "load favorites", err)
	}
	set := NewSet(ids...)
	log := logger.With().Str("component", "favorites").Logger()
	log.Debug().Int("count", set.Len()).Msg("favorites loaded")
	return &Store{
		repo: repo,
		log:  log,
		slot: make(chan struct{}, 1),
		cell: state.NewCell(set),
	}, nil
}

// Snapshot returns the current set.
func (s *Store) Snapshot() Set {
	set, _ := s.cell.Get()
	return set
}

// Observe streams the current set and every later one until ctx is done.
func (s *Store) Observe(ctx context.Context) <-chan Set {
	return s.cell.Subscribe(ctx)
}

// Toggle removes id when it is a favorite and adds it otherwise. The new set
// is persisted before it is published; when persistence fails the observable
// set is unchanged and the error has fault.KindPersistence. A call cancelled
// before it commits writes nothing and returns the context error.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("favorite id is empty")
	}
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	cur := s.Snapshot()
	next, added := cur.Toggle(id)
	if err := s.repo.Save(ctx, next.IDs()); err != nil {
		if fault.IsCanceled(err) {
			return false, err
		}
		s.log.Warn().Err(err).Str("id", id).Msg("persist favorites failed")
		return false, fault.New(fault.KindPersistence, "save favorites", err)
	}
	s.cell.Set(next)
	s.log.Debug().Str("id", id).Bool("added", added).Int("count", next.Len()).Msg("favorite toggled")
	return added, nil
}

// Reload re-reads the repository and publishes the result when it differs
// from the current set. Used when the backing file changes on disk.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()

	ids, err := s.repo.Load(ctx)
	if err != nil {
		return false, fault.New(fault.KindPersistence, "reload favorites", err)
	}
	next := NewSet(ids...)
	if next.Equal(s.Snapshot()) {
		return false, nil
	}
	s.cell.Set(next)
	s.log.Info().Int("count", next.Len()).Msg("favorites reloaded from disk")
	return true, nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.slot <- struct{}{}:
		return nil
	}
}

func (s *Store) release() {
	<-s.slot
}
