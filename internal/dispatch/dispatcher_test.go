//go:build unit

package dispatch_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/infra/gateway"
	"bundlemart-api/internal/pkg/config"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSender fails each recipient a configured number of times before
// succeeding, and records every attempt.
type scriptedSender struct {
	mu        sync.Mutex
	failures  map[string]int
	failWith  error
	attempts  map[string]int
	delivered []string
}

func newScriptedSender(failures map[string]int, failWith error) *scriptedSender {
	return &scriptedSender{
		failures: failures,
		failWith: failWith,
		attempts: make(map[string]int),
	}
}

func (s *scriptedSender) Send(_ context.Context, to, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[to]++
	if s.attempts[to] <= s.failures[to] {
		return s.failWith
	}
	s.delivered = append(s.delivered, to)
	return nil
}

func testDispatcher(sender dispatch.Sender) *dispatch.Dispatcher {
	cfg := config.NewTestConfig().Dispatch
	return dispatch.NewDispatcher(sender, cfg, slog.Default())
}

func makeJobs(n int) []dispatch.Job {
	jobs := make([]dispatch.Job, n)
	for i := range jobs {
		jobs[i] = dispatch.Job{
			Recipient: fmt.Sprintf("02440000%02d", i),
			Message:   "Your order is ready",
			OrderRef:  fmt.Sprintf("ORD-%02d", i),
		}
	}
	return jobs
}

func TestDispatch(t *testing.T) {
	t.Run("all jobs delivered on first attempt", func(t *testing.T) {
		sender := newScriptedSender(nil, nil)
		report, err := testDispatcher(sender).Dispatch(context.Background(), makeJobs(12))

		require.NoError(t, err)
		assert.Equal(t, 12, report.Success)
		assert.Equal(t, 0, report.Failed)
		assert.Len(t, report.Results, 12)
		for _, res := range report.Results {
			assert.True(t, res.Delivered)
			assert.Equal(t, 1, res.Attempts)
		}
	})

	t.Run("transient failures recover within the retry budget", func(t *testing.T) {
		jobs := makeJobs(5)
		failWith := &gateway.SMSStatusError{Code: "throttled"}
		sender := newScriptedSender(map[string]int{
			jobs[1].Recipient: 1,
			jobs[3].Recipient: 2,
		}, failWith)

		report, err := testDispatcher(sender).Dispatch(context.Background(), jobs)

		require.NoError(t, err)
		assert.Equal(t, 5, report.Success)
		assert.Equal(t, 0, report.Failed)
		assert.Equal(t, 2, report.Results[1].Attempts)
		assert.Equal(t, 3, report.Results[3].Attempts)
	})

	t.Run("exhausted job fails without blocking the batch", func(t *testing.T) {
		jobs := makeJobs(5)
		failWith := &gateway.SMSStatusError{Code: "rejected"}
		// MaxRetries=2 allows 3 attempts; 10 failures never recovers.
		sender := newScriptedSender(map[string]int{jobs[2].Recipient: 10}, failWith)

		report, err := testDispatcher(sender).Dispatch(context.Background(), jobs)

		require.NoError(t, err)
		assert.Equal(t, 4, report.Success)
		assert.Equal(t, 1, report.Failed)
		assert.False(t, report.Results[2].Delivered)
		assert.Equal(t, 3, report.Results[2].Attempts)
		assert.Error(t, report.Results[2].Err)
	})

	t.Run("success plus failed always equals attempted jobs", func(t *testing.T) {
		jobs := makeJobs(13)
		failWith := &gateway.SMSStatusError{Code: "rejected"}
		sender := newScriptedSender(map[string]int{
			jobs[0].Recipient:  10,
			jobs[6].Recipient:  10,
			jobs[12].Recipient: 10,
		}, failWith)

		report, err := testDispatcher(sender).Dispatch(context.Background(), jobs)

		require.NoError(t, err)
		assert.Equal(t, 10, report.Success)
		assert.Equal(t, 3, report.Failed)
		assert.Equal(t, len(jobs), report.Success+report.Failed)
	})

	t.Run("results preserve job order", func(t *testing.T) {
		jobs := makeJobs(7)
		sender := newScriptedSender(nil, nil)

		report, err := testDispatcher(sender).Dispatch(context.Background(), jobs)

		require.NoError(t, err)
		got := make([]dispatch.Job, len(report.Results))
		for i, res := range report.Results {
			got[i] = res.Job
		}
		if diff := cmp.Diff(jobs, got); diff != "" {
			t.Errorf("result order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty job list yields empty report", func(t *testing.T) {
		report, err := testDispatcher(newScriptedSender(nil, nil)).Dispatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Zero(t, report.Success)
		assert.Zero(t, report.Failed)
		assert.Empty(t, report.Results)
	})

	t.Run("missing sender aborts immediately", func(t *testing.T) {
		cfg := config.NewTestConfig().Dispatch
		d := dispatch.NewDispatcher(nil, cfg, slog.Default())

		_, err := d.Dispatch(context.Background(), makeJobs(1))
		assert.ErrorIs(t, err, dispatch.ErrNoSender)
	})

	t.Run("invalid batch size aborts immediately", func(t *testing.T) {
		cfg := config.NewTestConfig().Dispatch
		cfg.BatchSize = 0
		d := dispatch.NewDispatcher(newScriptedSender(nil, nil), cfg, slog.Default())

		_, err := d.Dispatch(context.Background(), makeJobs(1))
		assert.ErrorIs(t, err, dispatch.ErrInvalidBatchSize)
	})

	t.Run("cancellation between batches returns partial report", func(t *testing.T) {
		jobs := makeJobs(10)
		ctx, cancel := context.WithCancel(context.Background())
		sender := newScriptedSender(nil, nil)

		cfg := config.NewTestConfig().Dispatch
		cfg.InterBatchDelay = 50 * time.Millisecond
		cancelling := &cancellingSender{inner: sender, cancel: cancel, after: 5}
		d := dispatch.NewDispatcher(cancelling, cfg, slog.Default())

		report, err := d.Dispatch(ctx, jobs)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 5, report.Success+report.Failed)
	})
}

// cancellingSender cancels the run once `after` sends have happened.
type cancellingSender struct {
	mu     sync.Mutex
	inner  dispatch.Sender
	cancel context.CancelFunc
	after  int
	sent   int
}

func (s *cancellingSender) Send(ctx context.Context, to, msg string) error {
	err := s.inner.Send(ctx, to, msg)

	s.mu.Lock()
	s.sent++
	if s.sent >= s.after {
		s.cancel()
	}
	s.mu.Unlock()
	return err
}
