package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/observability"
	"github.com/mr1hm/go-sachet-alerts/internal/worker"
)

// Fetcher produces one filtered, deduplicated batch per call. An error means
// the feed could not be read; an empty batch means it had nothing live.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Disaster, error)
}

// Sink receives every batch. A batch replaces whatever the sink held before.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, batch []models.Disaster) error
}

type delivery struct {
	ctx   context.Context
	sink  Sink
	batch []models.Disaster
	done  *sync.WaitGroup
}

type Manager struct {
	cfg     *config.Config
	fetcher Fetcher
	sinks   []Sink
	clock   clockwork.Clock
	metrics *observability.Metrics
	pool    *worker.WorkerPool[delivery]
	wg      sync.WaitGroup
	running atomic.Bool
}

func NewManager(cfg *config.Config, fetcher Fetcher, clock clockwork.Clock, metrics *observability.Metrics, sinks ...Sink) *Manager {
	return &Manager{
		cfg:     cfg,
		fetcher: fetcher,
		sinks:   sinks,
		clock:   clock,
		metrics: metrics,
	}
}

func (m *Manager) Start(ctx context.Context) {
	processor := func(_ context.Context, job delivery) error {
		defer job.done.Done()

		if err := job.sink.Deliver(job.ctx, job.batch); err != nil {
			m.metrics.SinkDeliveries.WithLabelValues(job.sink.Name(), "error").Inc()
			slog.Error("sink delivery failed", "sink", job.sink.Name(), "count", len(job.batch), "error", err)
			return err
		}
		m.metrics.SinkDeliveries.WithLabelValues(job.sink.Name(), "success").Inc()
		slog.Debug("batch delivered", "sink", job.sink.Name(), "count", len(job.batch))
		return nil
	}

	// Workers outlive ctx so a cycle in flight can always finish waiting on
	// its deliveries; Stop closes the queue.
	m.pool = worker.NewWorkerPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(context.WithoutCancel(ctx))

	if m.cfg.Feed.Enabled {
		m.wg.Add(1)
		go m.runPoller(ctx, m.cfg.Feed.PollInterval)
	}
}

func (m *Manager) runPoller(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "url", m.cfg.Feed.URL, "interval", interval)

	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	// Initial poll
	m.Trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down")
			return
		case <-ticker.Chan():
			m.Trigger(ctx)
		}
	}
}

// Trigger starts a cycle in the background unless one is already running,
// in which case the request is dropped and counted. It reports whether a
// cycle was started.
func (m *Manager) Trigger(ctx context.Context) bool {
	if !m.running.CompareAndSwap(false, true) {
		m.metrics.SkippedTicks.Inc()
		slog.Warn("previous cycle still running, skipping tick")
		return false
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.running.Store(false)
		m.poll(ctx)
	}()
	return true
}

func (m *Manager) poll(ctx context.Context) {
	slog.Debug("polling", "url", m.cfg.Feed.URL)
	start := m.clock.Now()

	batch, err := m.fetcher.Fetch(ctx)
	if err != nil {
		// sinks keep the last good batch until the feed is readable again
		slog.Warn("cycle failed, keeping previous batch", "error", err)
		m.metrics.CycleDuration.Observe(m.clock.Since(start).Seconds())
		return
	}
	m.metrics.BatchSize.Observe(float64(len(batch)))

	// Every successful batch is delivered, empty ones included, so sinks
	// never keep records that have dropped out of the feed.
	m.deliver(ctx, batch)

	m.metrics.CycleDuration.Observe(m.clock.Since(start).Seconds())
	slog.Debug("poll complete", "count", len(batch))
}

func (m *Manager) deliver(ctx context.Context, batch []models.Disaster) {
	var done sync.WaitGroup
	for _, s := range m.sinks {
		done.Add(1)
		job := delivery{ctx: ctx, sink: s, batch: batch, done: &done}
		if err := m.pool.Submit(ctx, job); err != nil {
			done.Done()
			m.metrics.SinkDeliveries.WithLabelValues(s.Name(), "error").Inc()
			slog.Warn("delivery not queued", "sink", s.Name(), "error", err)
		}
	}
	done.Wait()
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("ingestion manager stopped")
}
