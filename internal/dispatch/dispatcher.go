package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"bundlemart-api/internal/infra/gateway"
	"bundlemart-api/internal/pkg/config"
	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/pkg/retry"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidBatchSize = errs.New("batch size must be at least 1")
	ErrNoSender         = errs.New("sms sender is not configured")
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// Job is one notification to deliver. OrderRef ties the message back to the
// deposit or order that produced it and only appears in logs and reports.
type Job struct {
	Recipient string
	Message   string
	OrderRef  string
}

// Result records the outcome of one job after all retries.
type Result struct {
	Job       Job
	Attempts  int
	Delivered bool
	Err       error
}

// Report aggregates a dispatch run. Success+Failed always equals the number
// of jobs actually attempted, which is less than len(jobs) only when the run
// was cancelled between batches.
type Report struct {
	Success int
	Failed  int
	Results []Result
}

// Dispatcher pushes jobs through the SMS gateway in fixed-size batches. Jobs
// within a batch go out concurrently; batches run strictly one after another
// with a fixed delay in between so the gateway is never hit with more than
// one batch worth of traffic at a time.
type Dispatcher struct {
	sender Sender
	cfg    config.DispatchConfig
	logger *slog.Logger
}

func NewDispatcher(sender Sender, cfg config.DispatchConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, cfg: cfg, logger: logger}
}

// Dispatch runs all jobs to completion and returns the aggregate report.
// A retry-exhausted job marks that job failed and never blocks the rest of
// the batch. Cancellation between batches returns the partial report together
// with the context error.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []Job) (*Report, error) {
	if d.sender == nil {
		return &Report{}, ErrNoSender
	}
	if d.cfg.BatchSize < 1 {
		return &Report{}, ErrInvalidBatchSize
	}

	var success, failed atomic.Int64
	results := make([]Result, len(jobs))

	for start := 0; start < len(jobs); start += d.cfg.BatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return d.report(&success, &failed, results[:start]), ctx.Err()
			case <-time.After(d.cfg.InterBatchDelay):
			}
		}

		end := min(start+d.cfg.BatchSize, len(jobs))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res := d.deliver(ctx, jobs[i])
				if res.Delivered {
					success.Add(1)
				} else {
					failed.Add(1)
				}
				results[i] = res
			}(i)
		}
		wg.Wait()
	}

	return d.report(&success, &failed, results), nil
}

func (d *Dispatcher) deliver(ctx context.Context, job Job) Result {
	attempts := 0
	policy := retry.Policy{
		MaxAttempts: d.cfg.MaxRetries + 1,
		Classify:    d.classify,
	}

	err := policy.Do(ctx, func(ctx context.Context) error {
		attempts++
		return d.sender.Send(ctx, job.Recipient, job.Message)
	})

	if err != nil {
		d.logger.Warn("sms delivery failed",
			slog.String("order_ref", job.OrderRef),
			slog.Int("attempts", attempts),
			slog.String("error", err.Error()),
		)
		return Result{Job: job, Attempts: attempts, Err: err}
	}

	d.logger.Debug("sms delivered",
		slog.String("order_ref", job.OrderRef),
		slog.Int("attempts", attempts),
	)
	return Result{Job: job, Attempts: attempts, Delivered: true}
}

// classify maps a delivery error to its backoff. A gateway that answered but
// declined recovers faster than an unreachable one.
func (d *Dispatcher) classify(err error) (time.Duration, bool) {
	var statusErr *gateway.SMSStatusError
	if errors.As(err, &statusErr) {
		return d.cfg.GatewayBackoff, true
	}
	return d.cfg.NetworkBackoff, true
}

func (d *Dispatcher) report(success, failed *atomic.Int64, results []Result) *Report {
	return &Report{
		Success: int(success.Load()),
		Failed:  int(failed.Load()),
		Results: results,
	}
}
