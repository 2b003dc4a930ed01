// Package framer is the length-prefixed Connection (spec.md C4): it owns
// the cipher, the read/write buffers, and the socket poller, and turns a
// byte stream into typed wire.Message values one frame at a time. It is
// grounded on the buffered-channel connection state in the teacher's
// client2/connection.go (sendCh/fetchCh feeding a single driving
// goroutine) and disk.go's grow-on-demand read buffer.
package framer

import (
	"encoding/binary"
	"errors"

	"github.com/charmbracelet/log"
	channels "gopkg.in/eapache/channels.v1"

	"github.com/protanki-go/protocol/core/cipher"
	"github.com/protanki-go/protocol/core/codec"
	"github.com/protanki-go/protocol/core/metrics"
	"github.com/protanki-go/protocol/core/socket"
	"github.com/protanki-go/protocol/core/wire"
)

// headerLen is the 8-byte cleartext length+id prefix of every frame.
const headerLen = 8

// DefaultMaxFrameSize caps a single frame (header included) at 1MiB,
// generous enough for a resource payload but small enough that a forged
// length field cannot be used to stall the connection indefinitely.
const DefaultMaxFrameSize = 1 << 20

// recvChunk is the fixed scratch buffer size for one socket read.
const recvChunk = 4096

// Connection is spec.md C4. It is driven single-threadedly by one
// Session's progress loop; Send may be called re-entrantly from a
// handler callback running on that same goroutine.
type Connection struct {
	role    wire.Role
	catalog *wire.Catalog
	cipher  *cipher.Cipher
	poller  *socket.Poller

	maxFrameSize int

	readBuf []byte
	readTmp []byte

	writeQ      *channels.InfiniteChannel
	writeBuf    []byte
	writeBufOff int

	disconnected bool
	closing      bool
	closeErr     error
	flushWaiters []func()

	log *log.Logger
	met *metrics.Session
}

// New wraps conn for role, decoding messages with catalog. logger and met
// may be nil.
func New(conn socket.Conn, role wire.Role, catalog *wire.Catalog, logger *log.Logger, met *metrics.Session) *Connection {
	return &Connection{
		role:         role,
		catalog:      catalog,
		cipher:       cipher.Noop(),
		poller:       socket.New(conn),
		maxFrameSize: DefaultMaxFrameSize,
		readTmp:      make([]byte, recvChunk),
		writeQ:       channels.NewInfiniteChannel(),
		log:          logger,
		met:          met,
	}
}

// SetMaxFrameSize overrides DefaultMaxFrameSize. n <= 0 is ignored.
func (c *Connection) SetMaxFrameSize(n int) {
	if n > 0 {
		c.maxFrameSize = n
	}
}

// InstallCipher replaces the no-op cipher once the handshake completes.
// The prior cipher's guarded key material is destroyed.
func (c *Connection) InstallCipher(ci *cipher.Cipher) {
	old := c.cipher
	c.cipher = ci
	old.Destroy()
}

// Disconnected reports whether the connection has torn down.
func (c *Connection) Disconnected() bool { return c.disconnected }

// Send serializes msg and enqueues its ciphertext for transmission
// (spec.md §4.4.1). Once disconnected, or once closing-with-flush, Send
// is a silent no-op: callers must not assume a later send will land.
func (c *Connection) Send(msg wire.Message) error {
	if c.disconnected || c.closing {
		return nil
	}

	buf := make([]byte, headerLen)
	binary.BigEndian.PutUint32(buf[4:8], uint32(msg.MessageID()))
	w := &byteSliceWriter{buf: buf}
	if err := msg.EncodeFields(w); err != nil {
		return err
	}
	buf = w.buf

	if len(buf) > c.maxFrameSize {
		return &wire.PacketTooLarge{N: len(buf)}
	}
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))

	c.cipher.Encrypt(buf[headerLen:])
	c.writeQ.In() <- buf
	if c.met != nil {
		c.met.FramesOut.Inc()
	}
	return nil
}

// StartClose transitions to "closing with flush": no further sends are
// accepted, but bytes already queued keep draining. onFlushed is invoked
// once the write buffer has fully drained (or immediately, if it already
// has).
func (c *Connection) StartClose(onFlushed func()) {
	if c.disconnected {
		if onFlushed != nil {
			onFlushed()
		}
		return
	}
	c.closing = true
	if onFlushed != nil {
		if len(c.writeBuf) == 0 && c.writeQ.Len() == 0 {
			onFlushed()
		} else {
			c.flushWaiters = append(c.flushWaiters, onFlushed)
		}
	}
}

// Progress runs one non-blocking step: it drains pending writes, then
// attempts to parse and decode exactly one frame from the read buffer.
// msg is non-nil when a frame was decoded; err is non-nil (and the
// connection is left disconnected) on any fatal condition.
func (c *Connection) Progress() (msg wire.Message, err error) {
	if c.disconnected {
		return nil, &wire.ConnectionClosed{Reason: wire.ReasonDisconnected, Err: c.closeErr}
	}

	c.drainWrites()
	if c.disconnected {
		return nil, &wire.ConnectionClosed{Reason: wire.ReasonWriteError, Err: c.closeErr}
	}

	if c.closing && len(c.writeBuf) == 0 && c.writeQ.Len() == 0 {
		c.runFlushWaiters()
	}

	m, perr := c.tryParseFrame()
	if perr != nil {
		c.fail(wire.ReasonReadError, perr)
		return nil, perr
	}
	if m != nil {
		return m, nil
	}

	c.pollMoreBytes()
	return nil, nil
}

func (c *Connection) runFlushWaiters() {
	waiters := c.flushWaiters
	c.flushWaiters = nil
	for _, fn := range waiters {
		fn()
	}
}

func (c *Connection) drainWrites() {
	if len(c.writeBuf) == 0 {
		select {
		case next, ok := <-c.writeQ.Out():
			if !ok {
				return
			}
			c.writeBuf = next.([]byte)
			c.writeBufOff = 0
		default:
			return
		}
	}

	pending := c.writeBuf[c.writeBufOff:]
	res, ready := c.poller.PollSend(pending)
	if !ready {
		return
	}
	if res.Err != nil {
		c.fail(wire.ReasonWriteError, &wire.IoError{Err: res.Err})
		return
	}
	if c.met != nil {
		c.met.BytesOut.Add(float64(res.N))
	}
	c.writeBufOff += res.N
	if c.writeBufOff >= len(c.writeBuf) {
		c.writeBuf = nil
		c.writeBufOff = 0
	}
}

func (c *Connection) pollMoreBytes() {
	res, ready := c.poller.PollRecv(c.readTmp)
	if !ready {
		return
	}
	if res.Err != nil {
		c.fail(wire.ReasonReadError, &wire.IoError{Err: res.Err})
		return
	}
	if res.N == 0 {
		c.fail(wire.ReasonDisconnected, nil)
		return
	}
	if c.met != nil {
		c.met.BytesIn.Add(float64(res.N))
	}
	c.readBuf = append(c.readBuf, c.readTmp[:res.N]...)
}

// tryParseFrame attempts to decode exactly one frame already buffered.
// A nil, nil return means not enough bytes have arrived yet.
func (c *Connection) tryParseFrame() (wire.Message, error) {
	if len(c.readBuf) < headerLen {
		return nil, nil
	}
	length := int(binary.BigEndian.Uint32(c.readBuf[0:4]))
	id := int32(binary.BigEndian.Uint32(c.readBuf[4:8]))

	if length < headerLen {
		return nil, &wire.PacketTooSmall{N: length}
	}
	if length > c.maxFrameSize {
		return nil, &wire.PacketTooLarge{N: length}
	}
	if len(c.readBuf) < length {
		return nil, nil
	}

	payload := c.readBuf[headerLen:length]
	c.cipher.Decrypt(payload)

	msg, r, err := c.catalog.Decode(id, payload)
	if err != nil {
		if c.met != nil {
			c.met.CodecErrors.WithLabelValues(codecErrorKind(err)).Inc()
		}
		return nil, err
	}
	if r.Remaining() > 0 && c.log != nil {
		c.log.Warnf("frame id=%d: %d trailing undecoded bytes", id, r.Remaining())
	}

	c.readBuf = append(c.readBuf[:0], c.readBuf[length:]...)
	if c.met != nil {
		c.met.FramesIn.Inc()
	}
	return msg, nil
}

func (c *Connection) fail(reason wire.CloseReason, err error) {
	if c.disconnected {
		return
	}
	c.disconnected = true
	c.closeErr = err
	c.cipher.Destroy()
	c.poller.Close()
	if c.met != nil {
		c.met.Disconnects.WithLabelValues(reason.String()).Inc()
	}
	c.runFlushWaiters()
}

// codecErrorKind labels a decode-time error for core/metrics.Session's
// CodecErrors counter, using the §7 taxonomy's names.
func codecErrorKind(err error) string {
	var utf8Err *codec.Utf8DecodeError
	var ordinalErr *codec.EnumInvalidOrdinal
	var unknownEnumErr *codec.EnumUnknown
	var unknownIDErr *wire.PacketUnknownId

	switch {
	case errors.Is(err, codec.ErrVarIntTooLarge):
		return "varint_too_large"
	case errors.As(err, &utf8Err):
		return "utf8_decode_error"
	case errors.As(err, &ordinalErr):
		return "enum_invalid_ordinal"
	case errors.As(err, &unknownEnumErr):
		return "enum_unknown"
	case errors.As(err, &unknownIDErr):
		return "unknown_id"
	default:
		return "other"
	}
}

// byteSliceWriter appends to an owned []byte, used to build one frame
// without an intermediate bytes.Buffer allocation per field.
type byteSliceWriter struct{ buf []byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
