package task

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrAbandoned is returned when the producer of a task panicked before resolving it.
var ErrAbandoned = errors.New("task abandoned")

// Task is a single-shot asynchronous result. The first Resolve or Reject wins;
// later calls are ignored. The zero value is not usable, use New.
type Task[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New returns an unresolved task.
func New[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// Resolved returns a task already completed with v.
func Resolved[T any](v T) *Task[T] {
	t := New[T]()
	t.Resolve(v)
	return t
}

// Failed returns a task already completed with err.
func Failed[T any](err error) *Task[T] {
	t := New[T]()
	t.Reject(err)
	return t
}

// Resolve completes the task with v. It reports whether this call completed the task.
func (t *Task[T]) Resolve(v T) bool {
	return t.complete(v, nil)
}

// Reject completes the task with err. It reports whether this call completed the task.
func (t *Task[T]) Reject(err error) bool {
	var zero T
	return t.complete(zero, err)
}

func (t *Task[T]) complete(v T, err error) bool {
	completed := false
	t.once.Do(func() {
		t.value, t.err = v, err
		close(t.done)
		completed = true
	})
	return completed
}

// Done is closed once the task has a result.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Await blocks until the task completes or ctx ends.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then runs fn on its own goroutine with the task value once it completes successfully.
// Errors and ctx cancellation skip fn.
func (t *Task[T]) Then(ctx context.Context, fn func(T)) {
	go func() {
		v, err := t.Await(ctx)
		if err != nil {
			return
		}
		fn(v)
	}()
}

// Run executes fn on a new goroutine and returns its task. A panic in fn rejects the
// task with ErrAbandoned and is logged when logger is non-nil.
func Run[T any](ctx context.Context, logger *slog.Logger, fn func(context.Context) (T, error)) *Task[T] {
	t := New[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.Error("task panic", "error", r, "stack", string(debug.Stack()))
				}
				t.Reject(ErrAbandoned)
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			t.Reject(err)
			return
		}
		t.Resolve(v)
	}()
	return t
}
