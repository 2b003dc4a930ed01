// Package task is the one-shot Task framework (spec.md C6). A Task runs
// an optional executor on its first poll (e.g. send a request packet),
// then forwards every dispatched packet to a matcher until the matcher
// yields a value, at which point it resolves a Future and removes
// itself from the registry. AwaitMatch is the executor-less variant
// described in §4.6.
package task

import (
	"context"
	"errors"
	"sync"

	logging "gopkg.in/op/go-logging.v1"

	"github.com/protanki-go/protocol/core/handler"
	"github.com/protanki-go/protocol/core/wire"
)

// log is core/task's op/go-logging handle, sharing the process-wide
// backend core/klog.New installs.
var log = logging.MustGetLogger("task")

// ErrDisconnected is what a Future resolves with if the owning session
// terminates before the task's matcher ever yields a value.
var ErrDisconnected = errors.New("task: client disconnected")

// Matcher inspects an inbound message and optionally yields a result.
// A non-nil error is treated as fatal, the same as a handler Observe
// error: it aborts dispatch and disconnects the session.
type Matcher[T any] func(msg wire.Message) (value T, ok bool, err error)

type result[T any] struct {
	value T
	err   error
}

// Future is the handle returned to the caller of ExecuteTask/AwaitMatch.
type Future[T any] struct {
	resultCh chan result[T]
	cancelCh chan struct{}
	once     sync.Once
}

// Cancel detaches the Future from its task. The underlying handler
// notices on its next Progress call and removes itself (spec.md §4.6
// "dropping the future drops its sender").
func (f *Future[T]) Cancel() {
	f.once.Do(func() { close(f.cancelCh) })
}

// Await blocks until the task resolves, the context is done, or the
// owning session disconnects first.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case r, ok := <-f.resultCh:
		if !ok {
			var zero T
			return zero, ErrDisconnected
		}
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		f.Cancel()
		return zero, ctx.Err()
	}
}

type taskHandler[S any, T any] struct {
	executor func(s S) error
	matcher  Matcher[T]
	future   *Future[T]
	started  bool
	done     bool
}

func (h *taskHandler[S, T]) finish(r result[T]) {
	if h.done {
		return
	}
	h.done = true
	h.future.resultCh <- r
	close(h.future.resultCh)
}

func (h *taskHandler[S, T]) Observe(_ S, msg wire.Message) error {
	if h.done {
		return nil
	}
	v, ok, err := h.matcher(msg)
	if err != nil {
		h.finish(result[T]{err: err})
		return err
	}
	if ok {
		h.finish(result[T]{value: v})
	}
	return nil
}

func (h *taskHandler[S, T]) cancelled() bool {
	select {
	case <-h.future.cancelCh:
		return true
	default:
		return false
	}
}

func (h *taskHandler[S, T]) Progress(s S) (handler.Poll, error) {
	if h.done {
		return handler.Ready, nil
	}
	if !h.started {
		h.started = true
		if h.executor != nil {
			log.Debug("task: running executor on first progress")
			if err := h.executor(s); err != nil {
				log.Debugf("task: executor failed: %v", err)
				h.finish(result[T]{err: err})
				return handler.Ready, err
			}
		}
	}
	if h.done {
		return handler.Ready, nil
	}
	if h.cancelled() {
		log.Debug("task: future cancelled, removing handler")
		h.done = true
		close(h.future.resultCh)
		return handler.Ready, nil
	}
	return handler.Pending, nil
}

// OnSessionClosed resolves an unresolved Future with ErrDisconnected
// when the owning session tears down (spec.md §5).
func (h *taskHandler[S, T]) OnSessionClosed() {
	if h.done {
		return
	}
	log.Debug("task: session closed before matcher resolved, resolving disconnected")
	h.done = true
	close(h.future.resultCh)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		resultCh: make(chan result[T], 1),
		cancelCh: make(chan struct{}),
	}
}

// Execute registers a task that runs executor once on its first poll,
// then waits for matcher to yield a value against dispatched packets.
func Execute[S any, T any](reg *handler.Registry[S], executor func(s S) error, matcher Matcher[T]) *Future[T] {
	fut := newFuture[T]()
	h := &taskHandler[S, T]{executor: executor, matcher: matcher, future: fut}
	reg.Register(h)
	return fut
}

// AwaitMatch registers a matcher-only task with no executor (spec.md
// §4.6's await_match): it resolves the first time matcher matches.
func AwaitMatch[S any, T any](reg *handler.Registry[S], matcher Matcher[T]) *Future[T] {
	return Execute[S, T](reg, nil, matcher)
}
