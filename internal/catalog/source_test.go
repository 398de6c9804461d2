package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/fault"
)

type fetchFunc func(ctx context.Context) ([]Item, error)

func (f fetchFunc) FetchCatalog(ctx context.Context) ([]Item, error) { return f(ctx) }

func collect(t *testing.T, ch <-chan Result) []Result {
	t.Helper()
	var out []Result
	timeout := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatalf("stream did not complete; got %d results", len(out))
		}
	}
}

func TestSource_FetchEmitsLoadingThenSortedSuccess(t *testing.T) {
	src := NewSource(fetchFunc(func(context.Context) ([]Item, error) {
		return []Item{{ID: "z", Name: "zulu"}, {ID: "a", Name: "Alpha"}}, nil
	}), zerolog.Nop())

	got := collect(t, src.Fetch(context.Background()))
	if len(got) != 2 {
		t.Fatalf("Fetch emitted %d results, want 2", len(got))
	}
	if got[0].Status != StatusLoading {
		t.Fatalf("first result = %v, want loading", got[0].Status)
	}
	if got[1].Status != StatusSuccess || !got[1].Terminal() {
		t.Fatalf("second result = %v, want success", got[1].Status)
	}
	if got[1].Items[0].ID != "a" || got[1].Items[1].ID != "z" {
		t.Fatalf("items = %v, want sorted [a z]", ids(got[1].Items))
	}
}

func TestSource_FetchEmitsError(t *testing.T) {
	want := fault.New(fault.KindNetworkTimeout, "fetch catalog", context.DeadlineExceeded)
	src := NewSource(fetchFunc(func(context.Context) ([]Item, error) {
		return nil, want
	}), zerolog.Nop())

	got := collect(t, src.Fetch(context.Background()))
	if len(got) != 2 || got[1].Status != StatusError {
		t.Fatalf("Fetch results = %#v, want loading then error", got)
	}
	if !errors.Is(got[1].Err, want) {
		t.Fatalf("Err = %v, want %v", got[1].Err, want)
	}
	if got[1].Reason() != fault.KindNetworkTimeout {
		t.Fatalf("Reason = %v, want %v", got[1].Reason(), fault.KindNetworkTimeout)
	}
}

func TestSource_FetchRecoversPanic(t *testing.T) {
	src := NewSource(fetchFunc(func(context.Context) ([]Item, error) {
		panic("boom")
	}), zerolog.Nop())

	got := collect(t, src.Fetch(context.Background()))
	if len(got) != 2 || got[1].Status != StatusError {
		t.Fatalf("Fetch results = %#v, want loading then error", got)
	}
	if got[1].Reason() != fault.KindGeneric {
		t.Fatalf("Reason = %v, want generic", got[1].Reason())
	}
}

func TestSource_CancelledFetchEmitsNoTerminal(t *testing.T) {
	started := make(chan struct{})
	src := NewSource(fetchFunc(func(ctx context.Context) ([]Item, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ch := src.Fetch(ctx)
	first := <-ch
	if first.Status != StatusLoading {
		t.Fatalf("first result = %v, want loading", first.Status)
	}
	<-started
	cancel()

	rest := collect(t, ch)
	if len(rest) != 0 {
		t.Fatalf("cancelled fetch emitted %#v, want nothing", rest)
	}
}

func TestFailure_NilErrorStillFails(t *testing.T) {
	r := Failure(nil)
	if r.Status != StatusError || r.Err == nil {
		t.Fatalf("Failure(nil) = %#v, want error result with err", r)
	}
}
