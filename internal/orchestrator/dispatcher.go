// Package orchestrator runs audits in the background, bounded in number and
// in time, and drains them on shutdown.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tracker-tv/phi-guard/internal/metrics"
	"github.com/tracker-tv/phi-guard/internal/service"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var ErrShuttingDown = errors.New("dispatcher is shutting down")

// cancelGrace bounds how long Shutdown waits for cancelled runs to unwind
// before the caller closes the ledger and the store under them.
const cancelGrace = 5 * time.Second

type Dispatcher struct {
	audits     service.AuditService
	sem        *semaphore.Weighted
	runTimeout time.Duration
	grace      time.Duration
	metrics    *metrics.Metrics
	log        *zap.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	pending atomic.Int64
}

func NewDispatcher(audits service.AuditService, maxConcurrent int64, runTimeout time.Duration, m *metrics.Metrics, log *zap.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		audits:     audits,
		sem:        semaphore.NewWeighted(maxConcurrent),
		runTimeout: runTimeout,
		grace:      cancelGrace,
		metrics:    m,
		log:        log,
		baseCtx:    ctx,
		cancel:     cancel,
	}
}

// Submit starts req in its own goroutine and returns immediately. Runs beyond
// the concurrency limit wait inside their goroutine, never in the caller.
func (d *Dispatcher) Submit(req models.AuditRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrShuttingDown
	}

	d.wg.Add(1)
	d.pending.Add(1)
	go d.run(req)
	return nil
}

func (d *Dispatcher) run(req models.AuditRequest) {
	log := d.log.With(
		zap.String("delivery", req.DeliveryID),
		zap.String("repo", req.FullName()),
		zap.Int("pr", req.Number),
	)
	defer d.wg.Done()
	defer d.pending.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			d.metrics.StageFailures.WithLabelValues("panic").Inc()
			log.Error("audit panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	if err := d.sem.Acquire(d.baseCtx, 1); err != nil {
		log.Warn("audit cancelled before it started", zap.Error(err))
		return
	}
	defer d.sem.Release(1)

	d.metrics.InFlight.Inc()
	defer d.metrics.InFlight.Dec()

	ctx, cancel := context.WithTimeout(d.baseCtx, d.runTimeout)
	defer cancel()

	if _, err := d.audits.Audit(ctx, req); err != nil {
		log.Error("audit failed", zap.Error(err))
	}
}

// Shutdown stops accepting runs and waits for in-flight ones until ctx is
// done. Runs still going after that are cancelled, and Shutdown waits up to
// the cancel grace for them to return. Only runs that ignore cancellation
// are abandoned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.log.Info("all audits drained")
		return nil
	case <-ctx.Done():
		cancelled := d.pending.Load()
		d.cancel()
		d.log.Warn("drain deadline reached, cancelling audits", zap.Int64("cancelled", cancelled))

		select {
		case <-done:
			return fmt.Errorf("draining audits: %d cancelled: %w", cancelled, ctx.Err())
		case <-time.After(d.grace):
			abandoned := d.pending.Load()
			d.log.Error("audits still running after cancellation", zap.Int64("abandoned", abandoned))
			return fmt.Errorf("draining audits: %d abandoned: %w", abandoned, ctx.Err())
		}
	}
}
