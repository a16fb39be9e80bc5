package dispatch

import (
	"context"
	"log/slog"
	"time"

	"bundlemart-api/internal/pkg/config"

	"github.com/google/uuid"
)

// QueuedJob is a persisted notification claimed for delivery.
type QueuedJob struct {
	ID       uuid.UUID
	Job      Job
	Attempts int
}

// JobStore persists notification jobs across process restarts.
type JobStore interface {
	DequeueBatch(ctx context.Context, limit int) ([]QueuedJob, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, attempts int) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error
	// Requeue returns a claimed job to the queue without burning an attempt.
	Requeue(ctx context.Context, id uuid.UUID) error
}

// Claimed jobs must have their outcome recorded even when the drain itself
// was cut short by shutdown, so marking runs on its own deadline rather than
// the worker context.
const outcomeTimeout = 10 * time.Second

// Worker drains queued notification jobs on a fixed interval and hands them
// to the dispatcher. One drain runs at a time; a slow gateway stretches the
// cycle instead of stacking drains.
type Worker struct {
	dispatcher *Dispatcher
	store      JobStore
	cfg        config.DispatchConfig
	logger     *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWorker(dispatcher *Dispatcher, store JobStore, cfg config.DispatchConfig, logger *slog.Logger) *Worker {
	return &Worker{
		dispatcher: dispatcher,
		store:      store,
		cfg:        cfg,
		logger:     logger,
	}
}

func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)
}

// Stop cancels the drain loop and waits for an in-flight drain to finish.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	queued, err := w.store.DequeueBatch(ctx, w.cfg.DrainBatchLimit)
	if err != nil {
		w.logger.Error("failed to dequeue notification jobs", slog.String("error", err.Error()))
		return
	}
	if len(queued) == 0 {
		return
	}

	jobs := make([]Job, len(queued))
	for i, q := range queued {
		jobs[i] = q.Job
	}

	report, err := w.dispatcher.Dispatch(ctx, jobs)
	if err != nil {
		w.logger.Warn("notification drain interrupted", slog.String("error", err.Error()))
	}

	markCtx, cancel := context.WithTimeout(context.Background(), outcomeTimeout)
	defer cancel()

	requeued := 0
	for i, q := range queued {
		// A cancelled run reports only the jobs it reached; the rest go
		// back to the queue for the next drain.
		if i >= len(report.Results) {
			if err := w.store.Requeue(markCtx, q.ID); err != nil {
				w.logger.Error("failed to requeue notification job",
					slog.String("job_id", q.ID.String()), slog.String("error", err.Error()))
				continue
			}
			requeued++
			continue
		}

		res := report.Results[i]
		attempts := q.Attempts + res.Attempts
		if res.Delivered {
			if err := w.store.MarkDelivered(markCtx, q.ID, attempts); err != nil {
				w.logger.Error("failed to mark notification delivered",
					slog.String("job_id", q.ID.String()), slog.String("error", err.Error()))
			}
			continue
		}

		lastError := ""
		if res.Err != nil {
			lastError = res.Err.Error()
		}
		if err := w.store.MarkFailed(markCtx, q.ID, attempts, lastError); err != nil {
			w.logger.Error("failed to mark notification failed",
				slog.String("job_id", q.ID.String()), slog.String("error", err.Error()))
		}
	}

	w.logger.Info("notification drain finished",
		slog.Int("jobs", len(jobs)),
		slog.Int("success", report.Success),
		slog.Int("failed", report.Failed),
		slog.Int("requeued", requeued),
	)
}
