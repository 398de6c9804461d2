package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/fault"
)

// Source turns a Fetcher into a stream of Results.
type Source struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// NewSource wraps fetcher.
func NewSource(fetcher Fetcher, logger zerolog.Logger) *Source {
	return &Source{
		fetcher: fetcher,
		log:     logger.With().Str("component", "catalog").Logger(),
	}
}

// Fetch starts one fetch. The returned channel yields Loading, then exactly
// one Success or Error, then closes. When ctx is cancelled the channel closes
// without a terminal value.
func (s *Source) Fetch(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		if !send(ctx, out, Loading()) {
			return
		}
		res, ok := s.fetch(ctx)
		if !ok {
			s.log.Debug().Msg("catalog fetch cancelled")
			return
		}
		send(ctx, out, res)
	}()
	return out
}

func (s *Source) fetch(ctx context.Context) (res Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("catalog fetch panicked")
			res = Failure(fault.New(fault.KindGeneric, opFetchCatalog, fmt.Errorf("panic: %v", r)))
			ok = true
		}
	}()

	start := time.Now()
	items, err := s.fetcher.FetchCatalog(ctx)
	if err != nil {
		if fault.IsCanceled(err) || ctx.Err() != nil {
			return Result{}, false
		}
		s.log.Warn().Err(err).Str("reason", fault.KindOf(err).String()).Dur("elapsed", time.Since(start)).Msg("catalog fetch failed")
		return Failure(err), true
	}
	sorted := SortByName(items)
	s.log.Debug().Int("items", len(sorted)).Dur("elapsed", time.Since(start)).Msg("catalog fetched")
	return Success(sorted), true
}

func send(ctx context.Context, out chan<- Result, r Result) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- r:
		return true
	}
}
