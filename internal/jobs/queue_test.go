package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	runs *atomic.Int32
	errs int32
	fail error
}

func (j countingJob) Name() string { return "counting" }

func (j countingJob) Run(context.Context) error {
	n := j.runs.Add(1)
	if n <= j.errs {
		return j.fail
	}
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestQueueRunsJob(t *testing.T) {
	q := NewQueue(4)
	q.Start(1)
	defer q.Stop()

	var runs atomic.Int32
	q.Enqueue(countingJob{runs: &runs})

	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })
}

func TestQueueRetriesFailedJob(t *testing.T) {
	q := NewQueue(4)
	q.Start(1)
	defer q.Stop()

	var runs atomic.Int32
	q.Enqueue(countingJob{runs: &runs, errs: 1, fail: errors.New("transient")})

	waitFor(t, 5*time.Second, func() bool { return runs.Load() == 2 })
}

func TestQueueDropsGoneJob(t *testing.T) {
	q := NewQueue(4)
	q.Start(1)

	var runs atomic.Int32
	q.Enqueue(countingJob{runs: &runs, errs: 10, fail: ErrGone})

	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })
	q.Stop()

	if got := runs.Load(); got != 1 {
		t.Errorf("gone job should not be retried, ran %d times", got)
	}
}
