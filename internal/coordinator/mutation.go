package coordinator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/fault"
	"github.com/five82/stash/internal/metrics"
)

// Toggler flips membership of one id in the persisted favorite set.
type Toggler interface {
	Toggle(ctx context.Context, id string) (added bool, err error)
}

// MutationController runs toggle requests one job at a time from the caller's
// point of view: a new Request cancels the job still in flight. Failures are
// reported through notify; cancellations are not reported at all.
type MutationController struct {
	toggler Toggler
	notify  func(Signal)
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewMutationController returns a controller that applies toggles with
// toggler and reports failures to notify.
func NewMutationController(toggler Toggler, notify func(Signal), logger zerolog.Logger, m *metrics.Metrics) *MutationController {
	if notify == nil {
		notify = func(Signal) {}
	}
	return &MutationController{
		toggler: toggler,
		notify:  notify,
		log:     logger.With().Str("component", "mutation").Logger(),
		metrics: m,
	}
}

// Request cancels any in-flight toggle and starts a new one for id. It
// returns the job id used in logs, or "" once the controller is closed.
func (m *MutationController) Request(id string) string {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ""
	}
	ctx, cancel := context.WithCancel(context.Background())
	job := newJobID()
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(ctx, cancel, job, id)
	return job
}

// Cancel stops the in-flight toggle, if any.
func (m *MutationController) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Wait blocks until every started job has finished.
func (m *MutationController) Wait() {
	m.wg.Wait()
}

// Close rejects further requests and waits for started jobs to finish.
func (m *MutationController) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *MutationController) run(ctx context.Context, cancel context.CancelFunc, job, id string) {
	defer m.wg.Done()
	defer cancel()

	log := m.log.With().Str("job", job).Str("id", id).Logger()

	added, err := m.toggle(ctx, id)
	switch {
	case err == nil:
		result := "removed"
		if added {
			result = "added"
		}
		m.metrics.IncToggle(result)
		log.Debug().Str("result", result).Msg("favorite toggled")

	case fault.IsCanceled(err):
		m.metrics.IncToggle("cancelled")
		log.Debug().Msg("toggle superseded")

	default:
		reason := fault.KindOf(err)
		m.metrics.IncToggle("failed")
		log.Warn().Err(err).Str("reason", reason.String()).Msg("toggle failed")
		m.notify(SignalToggleFailed{ID: id, Reason: reason, Err: err})
	}
}

func (m *MutationController) toggle(ctx context.Context, id string) (added bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fault.New(fault.KindGeneric, "toggle favorite", fmt.Errorf("panic: %v", r))
		}
	}()
	return m.toggler.Toggle(ctx, id)
}

func newJobID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
