// Package session is the cooperative per-connection driver (spec.md
// C7): it owns a Connection and a handler registry and exposes the
// single surface higher layers use to talk
// to a peer — send, register handlers/tasks, attach components, and
// disconnect. It is grounded on the single-threaded progress-loop shape
// of the teacher's client2/connection.go worker goroutine, translated
// from that file's explicit channel draining into a Progress() step
// method the way spec.md's progress(cx) is translated.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/protanki-go/protocol/core/component"
	"github.com/protanki-go/protocol/core/framer"
	"github.com/protanki-go/protocol/core/handler"
	"github.com/protanki-go/protocol/core/logfilter"
	"github.com/protanki-go/protocol/core/task"
	"github.com/protanki-go/protocol/core/wire"
)

// Session drives one Connection to quiescence one Progress step at a
// time. It is not safe for concurrent use: exactly one goroutine (its
// own Run loop, or a caller driving Progress by hand) may be "inside"
// a Session at once, though handlers and tasks may freely call back
// into it (Send, RegisterHandler, ...) during that single step —
// that re-entrancy is what core/handler's deferred mutations exist for.
type Session struct {
	conn       *framer.Connection
	registry   *handler.Registry[*Session]
	components *component.Bag
	startedAt  time.Time

	closing      bool
	disconnected bool
	closeErr     error

	log    *log.Logger
	filter logfilter.Filter
}

// New builds a Session around an already-handshaked Connection. logger and
// filter may be nil (filter defaults to logfilter.Always()).
func New(conn *framer.Connection, logger *log.Logger, filter logfilter.Filter) *Session {
	if filter == nil {
		filter = logfilter.Always()
	}
	return &Session{
		conn:       conn,
		registry:   handler.NewRegistry[*Session](),
		components: component.NewBag(),
		startedAt:  time.Now(),
		log:        logger,
		filter:     filter,
	}
}

// Send enqueues msg for transmission (spec.md §4.4.1 via the owned
// Connection).
func (s *Session) Send(msg wire.Message) error {
	if s.filter.ShouldLog(true, msg) && s.log != nil {
		s.log.Debugf("send id=%d model=%d", msg.MessageID(), msg.ModelID())
	}
	return s.conn.Send(msg)
}

// RegisterHandler adds h to the handler registry and returns its id.
func (s *Session) RegisterHandler(h handler.Handler[*Session]) int {
	return s.registry.Register(h)
}

// RemoveHandler drops the handler registered under id.
func (s *Session) RemoveHandler(id int) {
	s.registry.Remove(id)
}

// SessionTimestamp returns milliseconds elapsed since the Session was
// constructed, truncated to a signed 32-bit integer (spec.md §4.7).
func (s *Session) SessionTimestamp() int32 {
	return int32(time.Since(s.startedAt).Milliseconds())
}

// Disconnected reports whether the session has finished tearing down.
func (s *Session) Disconnected() bool { return s.disconnected }

// CloseErr returns the error (if any) that caused disconnection.
func (s *Session) CloseErr() error { return s.closeErr }

// Disconnect marks the session disconnected. flush=false tears down
// immediately; flush=true refuses new sends but keeps draining queued
// writes until the connection's write buffer empties, then completes.
func (s *Session) Disconnect(flush bool) {
	if s.disconnected {
		return
	}
	if !flush {
		s.finish(nil)
		return
	}
	s.closing = true
	s.conn.StartClose(func() { s.finish(nil) })
}

func (s *Session) finish(err error) {
	if s.disconnected {
		return
	}
	s.disconnected = true
	s.closeErr = err
	s.registry.CloseAll()
}

// RegisterComponent stores value in the session's typed component bag,
// overwriting any existing value of the same type. A free function
// because Go methods cannot carry their own type parameters.
func RegisterComponent[T any](s *Session, value T) {
	component.Register(s.components, value)
}

// GetComponent retrieves the value of type T previously registered, if
// any.
func GetComponent[T any](s *Session) (T, bool) {
	return component.Get[T](s.components)
}

// ExecuteTask registers a one-shot task: executor runs once on the
// session's next Progress step, then every dispatched packet is
// offered to matcher until it yields a value.
func ExecuteTask[T any](s *Session, executor func(*Session) error, matcher task.Matcher[T]) *task.Future[T] {
	return task.Execute(s.registry, executor, matcher)
}

// AwaitMatch registers a matcher-only task with no executor.
func AwaitMatch[T any](s *Session, matcher task.Matcher[T]) *task.Future[T] {
	return task.AwaitMatch(s.registry, matcher)
}

// Progress runs a single cooperative step (spec.md §4.7):
//  1. progress the handler registry (timers, tasks with no packet to wait on);
//  2. progress the connection once, dispatching at most one decoded packet
//     to preserve fairness across bursts;
//  3. complete a pending flush-close once the write buffer has drained;
//  4. settle into disconnected if the connection tore down underneath us.
//
// Any error returned here has already put the session into disconnected.
func (s *Session) Progress() error {
	if s.disconnected {
		return nil
	}

	if err := s.registry.Progress(s); err != nil {
		s.finish(err)
		return err
	}

	msg, err := s.conn.Progress()
	if err != nil {
		s.finish(err)
		return err
	}
	if msg != nil {
		if s.filter.ShouldLog(false, msg) && s.log != nil {
			s.log.Debugf("recv id=%d model=%d", msg.MessageID(), msg.ModelID())
		}
		if err := s.registry.Dispatch(s, msg); err != nil {
			s.finish(err)
			return err
		}
	}

	if s.conn.Disconnected() {
		s.finish(nil)
	}
	return nil
}

// Run drives Progress until the session disconnects or ctx is done,
// sleeping for a millisecond after every step, whether or not that step
// did any work. Connection I/O itself never blocks this goroutine
// (core/socket polls in the background); the sleep bounds how hard an
// idle session spins while waiting on the next socket event.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.Disconnect(false)
			return ctx.Err()
		default:
		}

		err := s.Progress()
		if s.disconnected {
			return err
		}
		if err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}
}
