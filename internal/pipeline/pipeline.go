// Package pipeline runs CPU-bound batch work on a worker pool fed by one
// submitter goroutine, with results delivered on a completion queue.
package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Result is the outcome of one item. Index is its position in the input.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

type task[T any] struct {
	idx  int
	item T
}

// Stream applies fn to every item on workers goroutines (<= 0 means
// numCPU). Results arrive in completion order, not input order. The
// returned channel is closed when every submitted item finished.
//
// Cancelling ctx stops the submitter; items already handed to a worker
// still run to completion and are delivered.
func Stream[In, Out any](ctx context.Context, workers int, in []In, fn func(In) (Out, error)) <-chan Result[Out] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, len(in)))
	workQ := make(chan task[In], workers)
	doneQ := make(chan Result[Out], workers)

	go func() {
		defer close(workQ)
		for i, it := range in {
			select {
			case workQ <- task[In]{idx: i, item: it}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for t := range workQ {
				v, err := fn(t.item)
				doneQ <- Result[Out]{Index: t.idx, Value: v, Err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(doneQ)
	}()
	return doneQ
}

// Map is Stream with results gathered back into input order. It returns
// the error of the lowest-indexed failing item, if any.
func Map[In, Out any](ctx context.Context, workers int, in []In, fn func(In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	errs := make([]error, len(in))
	for r := range Stream(ctx, workers, in, fn) {
		out[r.Index] = r.Value
		errs[r.Index] = r.Err
	}
	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
