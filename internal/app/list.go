package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/stash/internal/coordinator"
	"github.com/five82/stash/internal/render"
)

// WaitSettled loads and returns the first Screen that is not loading.
func WaitSettled(ctx context.Context, coord *coordinator.Coordinator) (coordinator.Screen, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := coord.States(ctx)
	coord.Load()
	for {
		select {
		case <-ctx.Done():
			return coordinator.Screen{}, ctx.Err()
		case s, ok := <-states:
			if !ok {
				return coordinator.Screen{}, ctx.Err()
			}
			if s.Phase != coordinator.PhaseLoading {
				return s, nil
			}
		}
	}
}

// List prints the favorites view once, with sponsored rows when enabled.
func List(ctx context.Context, svc *Services, w io.Writer) error {
	screen, err := WaitSettled(ctx, svc.Coordinator)
	if err != nil {
		return err
	}

	switch screen.Phase {
	case coordinator.PhaseError:
		return fmt.Errorf("%s (%w)", strings.TrimSuffix(screen.Reason().Message(), "."), screen.Err)
	case coordinator.PhaseNoData:
		_, err := fmt.Fprintln(w, "No favorites.")
		return err
	}

	rows := render.Materialize(screen.Items, svc.Config.Sponsored, svc.Config.SponsoredEvery)
	_, err = io.WriteString(w, render.Text(rows))
	return err
}

// ListFavoriteIDs prints the stored favorite ids, one per line, without
// contacting the catalog.
func ListFavoriteIDs(svc *Services, w io.Writer) error {
	for _, id := range svc.Store.Snapshot().IDs() {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}

// ToggleFavorite flips id in the store and reports the new membership.
func ToggleFavorite(ctx context.Context, svc *Services, id string, w io.Writer) error {
	added, err := svc.Store.Toggle(ctx, id)
	if err != nil {
		return err
	}
	verb := "removed from"
	if added {
		verb = "added to"
	}
	_, err = fmt.Fprintf(w, "%s %s favorites\n", id, verb)
	return err
}
