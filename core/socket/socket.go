// Package socket adapts a blocking net.Conn into the pollable
// poll_recv/poll_send contract of spec.md §6.6. Go has no portable
// non-blocking socket API exposed through net.Conn, so each direction
// is served by one dedicated goroutine doing blocking I/O and posting
// its outcome to a buffered channel; Framer drains those channels with
// a non-blocking select the way the teacher's client2/connection.go
// drains sendCh/fetchCh from its worker goroutine.
package socket

import (
	"io"
	"net"
	"sync"
)

// Conn is the minimal stream contract a Framer drives. net.Conn
// satisfies it directly; tests can supply anything smaller (net.Pipe,
// an in-memory io.ReadWriter wrapper).
type Conn interface {
	io.Reader
	io.Writer
	Close() error
}

// Result is the outcome of one read or write attempt.
type Result struct {
	N   int
	Err error
}

// Poller turns a blocking Conn into something a single-threaded
// cooperative driver can poll without ever blocking its own goroutine.
// At most one background Read and one background Write are in flight
// on the underlying Conn at a time; PollRecv/PollSend never block — they
// report whether the in-flight call has finished yet.
type Poller struct {
	conn Conn

	recvOut chan Result
	sendOut chan Result

	recvMu      sync.Mutex
	recvPending bool
	sendMu      sync.Mutex
	sendPending bool

	closeOnce sync.Once
	closed    chan struct{}
}

// New wraps conn. The Poller takes ownership of conn: callers should
// use Poller.Close instead of closing conn directly.
func New(conn Conn) *Poller {
	return &Poller{
		conn:    conn,
		recvOut: make(chan Result, 1),
		sendOut: make(chan Result, 1),
		closed:  make(chan struct{}),
	}
}

// PollRecv starts (if not already started) a background Read into buf
// and reports whether it has completed. ready=false means the read is
// still in flight and buf must not be reused until a later call
// reports ready=true.
func (p *Poller) PollRecv(buf []byte) (res Result, ready bool) {
	p.recvMu.Lock()
	defer p.recvMu.Unlock()

	if !p.recvPending {
		p.recvPending = true
		go func() {
			n, err := p.conn.Read(buf)
			select {
			case p.recvOut <- Result{N: n, Err: err}:
			case <-p.closed:
			}
		}()
	}

	select {
	case r := <-p.recvOut:
		p.recvPending = false
		return r, true
	default:
		return Result{}, false
	}
}

// PollSend starts (if not already started) a background Write of buf
// and reports whether it has completed.
func (p *Poller) PollSend(buf []byte) (res Result, ready bool) {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	if !p.sendPending {
		p.sendPending = true
		go func() {
			n, err := p.conn.Write(buf)
			select {
			case p.sendOut <- Result{N: n, Err: err}:
			case <-p.closed:
			}
		}()
	}

	select {
	case r := <-p.sendOut:
		p.sendPending = false
		return r, true
	default:
		return Result{}, false
	}
}

// Close releases the underlying Conn. Safe to call more than once.
func (p *Poller) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.closed)
		err = p.conn.Close()
	})
	return err
}

var _ Conn = (net.Conn)(nil)
