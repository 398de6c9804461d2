package coordinator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/engine"
	"github.com/five82/stash/internal/fault"
	"github.com/five82/stash/internal/favorites"
	"github.com/five82/stash/internal/metrics"
	"github.com/five82/stash/internal/state"
)

const signalBuffer = 16

// CatalogSource starts one catalog fetch per call.
type CatalogSource interface {
	Fetch(ctx context.Context) <-chan catalog.Result
}

// FavoriteStore is the favorites store as seen by the coordinator.
type FavoriteStore interface {
	Toggler
	Observe(ctx context.Context) <-chan favorites.Set
}

var (
	_ CatalogSource = (*catalog.Source)(nil)
	_ FavoriteStore = (*favorites.Store)(nil)
)

// Dependencies wires a Coordinator.
type Dependencies struct {
	Catalog   CatalogSource
	Favorites FavoriteStore
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	// Pick returns an index in [0, n). Defaults to a uniform random pick.
	Pick func(n int) int
}

// Coordinator is the single owner of the favorites Screen.
type Coordinator struct {
	catalog   CatalogSource
	favorites FavoriteStore
	mutations *MutationController
	log       zerolog.Logger
	metrics   *metrics.Metrics
	pick      func(int) int

	screen *state.Cell[Screen]

	root       context.Context
	cancelRoot context.CancelFunc

	loadMu sync.Mutex // serializes Load

	mu        sync.Mutex // guards gen, sub, closed and Screen writes
	gen       uint64
	failedGen uint64 // last generation counted as a load failure
	sub       *subscription
	closed    bool

	sigMu     sync.Mutex
	sigClosed bool
	signals   chan Signal
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a Coordinator in PhaseLoading. Call Load to start the first
// subscription.
func New(deps Dependencies) (*Coordinator, error) {
	if deps.Catalog == nil {
		return nil, errors.New("coordinator: catalog source is required")
	}
	if deps.Favorites == nil {
		return nil, errors.New("coordinator: favorites store is required")
	}
	pick := deps.Pick
	if pick == nil {
		pick = rand.IntN
	}

	root, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		catalog:    deps.Catalog,
		favorites:  deps.Favorites,
		log:        deps.Logger.With().Str("component", "coordinator").Logger(),
		metrics:    deps.Metrics,
		pick:       pick,
		screen:     state.NewCell(Screen{Phase: PhaseLoading}),
		root:       root,
		cancelRoot: cancel,
		signals:    make(chan Signal, signalBuffer),
	}
	c.mutations = NewMutationController(deps.Favorites, c.emit, deps.Logger, deps.Metrics)
	return c, nil
}

// Load replaces the current subscription with a new one. The previous
// subscription has fully stopped before the new one starts.
func (c *Coordinator) Load() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.sub
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(c.root)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	c.sub = sub
	c.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	c.metrics.IncLoad()
	c.log.Debug().Uint64("generation", gen).Msg("subscription started")
	go c.run(ctx, gen, sub.done)
}

// ToggleFavorite flips id in the favorites store. The Screen follows through
// the live subscription; failures arrive as SignalToggleFailed.
func (c *Coordinator) ToggleFavorite(id string) {
	c.mutations.Request(id)
}

// OpenRandom emits SignalNavigate for a random visible item. It does nothing
// unless the Screen is in PhaseSuccess.
func (c *Coordinator) OpenRandom() {
	screen := c.Current()
	if screen.Phase != PhaseSuccess || len(screen.Items) == 0 {
		return
	}
	i := c.pick(len(screen.Items))
	if i < 0 || i >= len(screen.Items) {
		i = 0
	}
	c.emit(SignalNavigate{Item: screen.Items[i]})
}

// Current returns the latest Screen.
func (c *Coordinator) Current() Screen {
	s, _ := c.screen.Get()
	return s
}

// States streams Screens, starting with the current one. Delivery is
// conflated. The channel closes when ctx is done.
func (c *Coordinator) States(ctx context.Context) <-chan Screen {
	return c.screen.Subscribe(ctx)
}

// Signals returns the one-shot event channel. It is closed by Close.
func (c *Coordinator) Signals() <-chan Signal {
	return c.signals
}

// Close stops the subscription, lets in-flight toggles finish and closes the
// signal channel. It is safe to call more than once.
func (c *Coordinator) Close() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	c.cancelRoot()
	if sub != nil {
		<-sub.done
	}
	c.mutations.Close()

	c.sigMu.Lock()
	c.sigClosed = true
	close(c.signals)
	c.sigMu.Unlock()
}

func (c *Coordinator) run(ctx context.Context, gen uint64, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Uint64("generation", gen).Msg("subscription panicked")
			err := fault.New(fault.KindGeneric, "load favorites", fmt.Errorf("panic: %v", r))
			c.apply(gen, engine.Combined{Status: catalog.StatusError, Err: err})
		}
	}()

	results := c.catalog.Fetch(ctx)
	sets := c.favorites.Observe(ctx)
	err := engine.CombineLatest(ctx, results, sets, func(cb engine.Combined) {
		c.apply(gen, cb)
	})
	if err != nil && !fault.IsCanceled(err) {
		c.log.Warn().Err(err).Uint64("generation", gen).Msg("subscription ended")
	}
}

// apply writes the Screen for cb if gen is still current.
func (c *Coordinator) apply(gen uint64, cb engine.Combined) {
	screen := ScreenFrom(cb)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		c.metrics.IncStaleDropped()
		return
	}
	c.screen.Set(screen)
	firstFailure := screen.Phase == PhaseError && c.failedGen != gen
	if firstFailure {
		c.failedGen = gen
	}
	c.mu.Unlock()

	switch screen.Phase {
	case PhaseSuccess:
		c.metrics.SetVisible(len(screen.Items))
	case PhaseNoData:
		c.metrics.SetVisible(0)
	case PhaseError:
		reason := screen.Reason()
		if firstFailure {
			c.metrics.IncLoadFailure(reason.String())
		}
		c.emit(SignalLoadFailed{Reason: reason, Err: screen.Err})
	}
}

func (c *Coordinator) emit(s Signal) {
	c.sigMu.Lock()
	defer c.sigMu.Unlock()
	if c.sigClosed {
		return
	}
	select {
	case c.signals <- s:
	default:
		c.log.Warn().Str("signal", fmt.Sprintf("%T", s)).Msg("signal dropped, consumer is not keeping up")
	}
}
