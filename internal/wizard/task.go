package wizard

import (
	"context"
	"sync"
	"time"
)

// Task is a single deferred computation. The result is delivered once through
// Done/Wait; a cancelled task never runs its function and reports ErrCancelled.
type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	once   sync.Once
	result T
	err    error
}

// Schedule runs fn once after delay. A non-positive delay runs fn right away
// on its own goroutine.
func Schedule[T any](ctx context.Context, delay time.Duration, fn func(context.Context) (T, error)) *Task[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go t.run(runCtx, delay, fn)
	return t
}

func (t *Task[T]) run(ctx context.Context, delay time.Duration, fn func(context.Context) (T, error)) {
	defer t.cancel()
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.finish(*new(T), ErrCancelled)
			return
		case <-timer.C:
		}
	}
	if ctx.Err() != nil {
		t.finish(*new(T), ErrCancelled)
		return
	}
	result, err := fn(ctx)
	if ctx.Err() != nil {
		t.finish(*new(T), ErrCancelled)
		return
	}
	t.finish(result, err)
}

func (t *Task[T]) finish(result T, err error) {
	t.once.Do(func() {
		t.result = result
		t.err = err
		close(t.done)
	})
}

// Done is closed once the task has a result or was cancelled.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Cancel discards the pending result. It is safe to call more than once and
// after completion, in which case the stored result is left alone.
func (t *Task[T]) Cancel() {
	if t == nil {
		return
	}
	t.cancel()
	t.finish(*new(T), ErrCancelled)
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}
