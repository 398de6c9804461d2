package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestCell_ZeroValueHasNoValue(t *testing.T) {
	var c Cell[int]
	_, ok := c.Get()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), c.Snapshot().Version)
}

func TestCell_SubscribeReplaysCurrent(t *testing.T) {
	c := NewCell("first")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := c.Subscribe(ctx)
	assert.Equal(t, "first", recv(t, ch))

	c.Set("second")
	assert.Equal(t, "second", recv(t, ch))
}

func TestCell_SubscribeWithoutValueWaits(t *testing.T) {
	var c Cell[int]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := c.Subscribe(ctx)
	select {
	case v := <-ch:
		t.Fatalf("received %d before any Set", v)
	case <-time.After(20 * time.Millisecond):
	}
	c.Set(7)
	assert.Equal(t, 7, recv(t, ch))
}

func TestCell_ConflatesForSlowReader(t *testing.T) {
	c := NewCell(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := c.Subscribe(ctx)
	for i := 1; i <= 100; i++ {
		c.Set(i)
	}
	assert.Equal(t, 100, recv(t, ch))
	assert.Equal(t, uint64(101), c.Snapshot().Version)
}

func TestCell_OrderPreservedAcrossReads(t *testing.T) {
	c := NewCell(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.Subscribe(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	seen := make([]int, 0, 50)
	go func() {
		defer wg.Done()
		for v := range ch {
			seen = append(seen, v)
			if v == 50 {
				return
			}
		}
	}()
	for i := 1; i <= 50; i++ {
		c.Set(i)
	}
	wg.Wait()

	for i := 1; i < len(seen); i++ {
		require.Greater(t, seen[i], seen[i-1], "values out of order: %v", seen)
	}
}

func TestCell_UpdateOnlyPublishesChanges(t *testing.T) {
	c := NewCell(1)
	before := c.Snapshot().Version

	got := c.Update(func(cur int) (int, bool) { return cur, false })
	assert.Equal(t, 1, got)
	assert.Equal(t, before, c.Snapshot().Version)

	got = c.Update(func(cur int) (int, bool) { return cur + 1, true })
	assert.Equal(t, 2, got)
	assert.Equal(t, before+1, c.Snapshot().Version)
}

func TestCell_CancelClosesAndUnregisters(t *testing.T) {
	c := NewCell(1)
	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Subscribe(ctx)
	recv(t, ch)
	require.Equal(t, 1, c.Subscribers())

	cancel()
	require.Eventually(t, func() bool { return c.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")

	c.Set(2) // must not panic on a closed channel
}
