// Package handler is the re-entrant-safe Handler registry (spec.md C5).
// Handlers frequently register or remove other handlers while being
// iterated (a task completing spawns the next one, a component reacts
// to a packet by attaching a helper); Registry defers such mutations
// until the current iteration finishes, the same way the teacher's
// client2/connection.go keeps a request channel instead of mutating
// shared maps directly from arbitrary call sites.
//
// Registry is generic over the session type S so this package never
// needs to import core/session (which in turn depends on Registry) —
// core/session instantiates Registry[*session.Session].
package handler

import (
	logging "gopkg.in/op/go-logging.v1"

	"github.com/protanki-go/protocol/core/wire"
)

// log is core/handler's op/go-logging handle, sharing the process-wide
// backend core/klog.New installs.
var log = logging.MustGetLogger("handler")

// Poll is the outcome of one Handler.Progress call.
type Poll int

const (
	// Pending means the handler has more work to do and stays registered.
	Pending Poll = iota
	// Ready means the handler is done; the registry removes it.
	Ready
)

// Handler observes dispatched packets and is polled for completion.
// Observe corresponds to spec.md's dispatch callback; Progress to its
// progress callback.
type Handler[S any] interface {
	Observe(s S, msg wire.Message) error
	Progress(s S) (Poll, error)
}

// Closer is an optional interface a Handler can implement to be told
// the owning session tore down, so it can resolve any outstanding
// futures with a "disconnected" result (spec.md §5 "dropping a session
// cancels all handlers and tasks").
type Closer interface {
	OnSessionClosed()
}

type entry[S any] struct {
	id int
	h  Handler[S]
}

type mutKind int

const (
	mutRegister mutKind = iota
	mutRemove
)

type mutation[S any] struct {
	kind mutKind
	id   int
	h    Handler[S]
}

// Registry is the C5 handler registry: insertion-ordered, with
// register/remove deferred while an iteration (Dispatch or Progress)
// is in flight.
type Registry[S any] struct {
	nextID    int
	entries   []entry[S]
	iterating bool
	pending   []mutation[S]
}

// NewRegistry returns an empty registry. IDs start at 1 so the zero
// value is never a valid handler id.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{nextID: 1}
}

// Register adds h and returns its fresh monotonic id. If a Dispatch or
// Progress call is currently iterating, the insertion is deferred
// until that call returns.
func (r *Registry[S]) Register(h Handler[S]) int {
	id := r.nextID
	r.nextID++
	if r.iterating {
		r.pending = append(r.pending, mutation[S]{kind: mutRegister, id: id, h: h})
		return id
	}
	r.entries = append(r.entries, entry[S]{id: id, h: h})
	return id
}

// Remove drops the handler registered under id, deferred the same way
// as Register if an iteration is in flight.
func (r *Registry[S]) Remove(id int) {
	if r.iterating {
		r.pending = append(r.pending, mutation[S]{kind: mutRemove, id: id})
		return
	}
	r.removeNow(id)
}

func (r *Registry[S]) removeNow(id int) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *Registry[S]) beginIterate() { r.iterating = true }

func (r *Registry[S]) endIterate() {
	r.iterating = false
	pending := r.pending
	r.pending = nil
	if len(pending) > 0 {
		log.Debugf("applying %d handler mutation(s) deferred during iteration", len(pending))
	}
	for _, m := range pending {
		switch m.kind {
		case mutRegister:
			r.entries = append(r.entries, entry[S]{id: m.id, h: m.h})
		case mutRemove:
			r.removeNow(m.id)
		}
	}
}

// Dispatch invokes Observe on every registered handler, in insertion
// order. Any error aborts the remaining iteration and is returned.
func (r *Registry[S]) Dispatch(s S, msg wire.Message) error {
	r.beginIterate()
	defer r.endIterate()
	for _, e := range r.entries {
		if err := e.h.Observe(s, msg); err != nil {
			return err
		}
	}
	return nil
}

// Progress polls every registered handler once, in insertion order.
// Ready-without-error removes the handler silently; Ready-with-error
// removes it and aborts the remaining iteration, returning the error;
// Pending leaves it registered.
func (r *Registry[S]) Progress(s S) error {
	r.beginIterate()
	kept := make([]entry[S], 0, len(r.entries))
	var resultErr error
	for i, e := range r.entries {
		poll, err := e.h.Progress(s)
		if err != nil {
			resultErr = err
			kept = append(kept, r.entries[i+1:]...)
			break
		}
		if poll == Pending {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	r.endIterate()
	return resultErr
}

// CloseAll tells every still-registered Closer handler that the
// session is gone, then clears the registry. Used when a session
// transitions to disconnected (spec.md §5).
func (r *Registry[S]) CloseAll() {
	for _, e := range r.entries {
		if c, ok := e.h.(Closer); ok {
			c.OnSessionClosed()
		}
	}
	r.entries = nil
	r.pending = nil
}

// Len reports the number of currently registered handlers, ignoring
// any mutations deferred by an in-flight iteration. Intended for tests.
func (r *Registry[S]) Len() int { return len(r.entries) }
