package leaderboard

import "context"

// Task is the deferred result of a background call.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs f in a new goroutine and returns its task.
func Go[T any](ctx context.Context, f func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.val, t.err = f(ctx)
	}()
	return t
}

// Failed returns a task that is already done with err.
func Failed[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Done is closed when the result is ready.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the result is ready or ctx ends.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
