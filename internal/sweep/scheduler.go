package sweep

import (
	"context"
	"sync"
	"time"
)

// Processor defines the behavior required to execute one task. *Worker is
// the production implementation.
type Processor interface {
	Process(task Task) Outcome
}

// Scheduler dispatches workers over a pre-materialized task list with
// bounded parallelism and aggregates outcomes in completion order.
//
// Cancellation is cooperative: once ctx is cancelled the scheduler stops
// launching tasks and stops consuming results; already-dispatched work may
// still complete but is not waited on. Totals are exact over the subset of
// tasks that were aggregated.
type Scheduler struct {
	worker  Processor
	workers int

	// KeepAffected retains affected outcomes in the summary (summary
	// mode).
	KeepAffected bool

	// OnOutcome, when non-nil, is invoked exactly once per aggregated
	// outcome, in completion order. It drives progress display and
	// structured-output collaborators; it must not block for long.
	OnOutcome func(Outcome)
}

// NewScheduler creates a Scheduler running tasks through worker with the
// given pool size. A non-positive pool size is coerced to 1.
func NewScheduler(worker Processor, workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		worker:  worker,
		workers: workers,
	}
}

// Run maps the task list through the worker pool and returns the
// aggregated summary. Results are aggregated in completion order, which is
// unspecified relative to submission order; the totals are nonetheless
// deterministic for a fixed, unmutated tree.
func (s *Scheduler) Run(ctx context.Context, paths []string) Summary {
	start := time.Now()
	summary := Summary{}

	if len(paths) == 0 {
		summary.Duration = time.Since(start)
		return summary
	}

	semaphore := make(chan struct{}, s.workers)
	resultsCh := make(chan Outcome, len(paths))

	var wg sync.WaitGroup
	launched := 0

launch:
	for _, path := range paths {
		// A two-way select alone is not enough: with a free semaphore
		// slot both cases are ready and either may win, so a cancelled
		// run could keep submitting tasks. Check the context first.
		if ctx.Err() != nil {
			break launch
		}
		select {
		case <-ctx.Done():
			break launch
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		launched++

		go func(task Task) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcome := s.worker.Process(task)

			// The results channel is buffered to the full task count, so
			// this send cannot block; the select guards against a
			// consumer that has already gone away.
			select {
			case resultsCh <- outcome:
			case <-ctx.Done():
			}
		}(Task{Path: path})
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	for aggregated := 0; aggregated < launched; {
		// Same priority rule as the launch loop: once cancelled, stop
		// consuming even when a result is already waiting.
		if ctx.Err() != nil {
			summary.Interrupted = true
			summary.Duration = time.Since(start)
			return summary
		}
		select {
		case <-ctx.Done():
			// Stop consuming further results; whatever is in flight is
			// abandoned and the partial totals stand.
			summary.Interrupted = true
			summary.Duration = time.Since(start)
			return summary
		case outcome, ok := <-resultsCh:
			if !ok {
				summary.Duration = time.Since(start)
				return summary
			}
			aggregated++
			summary.add(outcome, s.KeepAffected)
			if s.OnOutcome != nil {
				s.OnOutcome(outcome)
			}
		}
	}

	if ctx.Err() != nil {
		summary.Interrupted = true
	}
	summary.Duration = time.Since(start)
	return summary
}
