// Package jobs runs background work on a pool of worker goroutines fed by a
// buffered channel. Jobs are retried a bounded number of times; a job whose
// subject no longer exists is dropped, not retried.
package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrGone marks a job whose subject record disappeared before the job ran.
// Such jobs are dropped without retry.
var ErrGone = errors.New("job subject gone")

const (
	maxAttempts  = 3
	retryBackoff = 2 * time.Second
)

// Job is a unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type queued struct {
	job     Job
	attempt int
}

// Queue dispatches jobs to workers. Enqueue never blocks the caller; when
// the buffer is full the job is dropped and logged.
type Queue struct {
	ch      chan queued
	wg      sync.WaitGroup
	retryWG sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewQueue(buffer int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		ch:     make(chan queued, buffer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches n worker goroutines.
func (q *Queue) Start(n int) {
	for i := 0; i < n; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

// Enqueue submits a job for execution.
func (q *Queue) Enqueue(job Job) {
	select {
	case q.ch <- queued{job: job, attempt: 1}:
	default:
		zap.L().Warn("job queue full, dropping job", zap.String("job", job.Name()))
	}
}

// Stop drains in-flight jobs and waits for the workers to exit. Pending
// retries are abandoned.
func (q *Queue) Stop() {
	q.cancel()
	q.retryWG.Wait()
	close(q.ch)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for item := range q.ch {
		q.run(item)
	}
}

func (q *Queue) run(item queued) {
	err := item.job.Run(q.ctx)
	if err == nil {
		return
	}
	if errors.Is(err, ErrGone) {
		zap.L().Info("job subject gone, dropping job", zap.String("job", item.job.Name()))
		return
	}

	zap.L().Warn("job failed",
		zap.String("job", item.job.Name()),
		zap.Int("attempt", item.attempt),
		zap.Error(err))

	if item.attempt >= maxAttempts {
		zap.L().Error("job exhausted retries", zap.String("job", item.job.Name()))
		return
	}

	if q.ctx.Err() != nil {
		return
	}

	item.attempt++
	q.retryWG.Add(1)
	go func(item queued) {
		defer q.retryWG.Done()
		select {
		case <-q.ctx.Done():
		case <-time.After(retryBackoff):
			select {
			case q.ch <- item:
			default:
				zap.L().Warn("job queue full, dropping retry", zap.String("job", item.job.Name()))
			}
		}
	}(item)
}
