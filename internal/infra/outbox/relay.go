package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"restaurant-reservation/internal/infra/messaging"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/config"
)

const (
	purgeEvery     = time.Minute
	maxRetryDelay  = 5 * time.Minute
	baseRetryDelay = 2 * time.Second
)

// Relay moves queued notification jobs to the configured broker. Delivery is at least
// once: a crash between publish and commit republishes the batch.
type Relay struct {
	store     Store
	publisher messaging.Publisher
	clock     clock.Clock
	logger    *slog.Logger

	interval    time.Duration
	batchSize   int32
	maxAttempts int32

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	lastPurge time.Time
}

func NewRelay(store Store, publisher messaging.Publisher, clk clock.Clock, cfg config.EventsConfig, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.RelayInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Relay{
		store:       store,
		publisher:   publisher,
		clock:       clk,
		logger:      logger,
		interval:    interval,
		batchSize:   batch,
		maxAttempts: maxAttempts,
	}
}

func (r *Relay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
	r.logger.Info("outbox relay started", slog.Duration("interval", r.interval))
}

// Stop waits for the in-flight batch, bounded by ctx.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		r.logger.Info("outbox relay stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("outbox relay batch failed", slog.Any("error", err))
		}
		r.purge(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce publishes one batch and returns how many jobs were delivered.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.store.WithJobs(ctx, func(ctx context.Context, jobs JobStore) error {
		sent = 0
		batch, err := jobs.ClaimQueued(ctx, r.batchSize)
		if err != nil {
			return err
		}

		for _, job := range batch {
			pubErr := r.publisher.Publish(ctx, job.Topic, eventKey(job.Payload), job.Payload)
			if pubErr == nil {
				if err := jobs.MarkSent(ctx, job.ID); err != nil {
					return err
				}
				sent++
				continue
			}

			r.logger.Warn("outbox publish failed",
				slog.String("job_id", job.ID.String()),
				slog.String("topic", job.Topic),
				slog.Int("attempt", int(job.Attempts)+1),
				slog.Any("error", pubErr))

			retryAt := r.clock.Now().Add(retryDelay(job.Attempts))
			if err := jobs.MarkFailed(ctx, job.ID, pubErr.Error(), retryAt, r.maxAttempts); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func (r *Relay) purge(ctx context.Context) {
	now := r.clock.Now()
	if now.Sub(r.lastPurge) < purgeEvery {
		return
	}
	r.lastPurge = now

	n, err := r.store.PurgeExpiredIdempotencyKeys(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("failed to purge expired idempotency keys", slog.Any("error", err))
		}
		return
	}
	if n > 0 {
		r.logger.Info("purged expired idempotency keys", slog.Int64("count", n))
	}
}

func retryDelay(attempts int32) time.Duration {
	if attempts > 16 {
		return maxRetryDelay
	}
	return min(baseRetryDelay*time.Duration(1<<attempts), maxRetryDelay)
}

func eventKey(payload []byte) string {
	var head struct {
		ReservationID string `json:"reservation_id"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return ""
	}
	return head.ReservationID
}
