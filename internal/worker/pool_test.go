package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	counter *int64
	err     error
}

type countingResult struct {
	err error
}

func (r countingResult) GetError() error { return r.err }

func (j countingJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return countingResult{err: j.err}
}

type blockingJob struct{}

func (blockingJob) Execute(ctx context.Context) Result {
	<-ctx.Done()
	return countingResult{err: ctx.Err()}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var counter int64
	const jobs = 10
	for i := 0; i < jobs; i++ {
		pool.Submit(countingJob{counter: &counter})
	}

	results := pool.Wait()

	if got := atomic.LoadInt64(&counter); got != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, got)
	}
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var counter int64
	wantErr := errors.New("boom")
	pool.Submit(countingJob{counter: &counter})
	pool.Submit(countingJob{counter: &counter, err: wantErr})

	var failed int
	for _, r := range pool.Wait() {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 failed result, got %d", failed)
	}
}

func TestPool_ParentContextCancelsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)
	pool.Start()

	pool.Submit(blockingJob{})

	// Give the worker a moment to pick the job up, then cancel.
	time.Sleep(10 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after cancellation")
	}
}

func TestPool_MinimumOneWorker(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	pool.Start()

	var counter int64
	pool.Submit(countingJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
