package wire

import (
	"fmt"
	"sync"

	logging "gopkg.in/op/go-logging.v1"

	"github.com/protanki-go/protocol/core/codec"
)

// log is core/wire's op/go-logging handle, sharing the process-wide
// backend core/klog.New installs.
var log = logging.MustGetLogger("wire")

// schemaEntry is what cmd/genmessages actually registers: a decoder plus
// the direction it was declared with, so Catalog can decide whether a
// given Role should be decoding it at all.
type schemaEntry struct {
	decoder   Decoder
	direction Direction
}

// Catalog is the set of message types known to a connection for its
// direction (GLOSSARY). It is built once at startup and is read-only
// after that — spec.md §5 "shared... message catalog (read-only after
// init)".
type Catalog struct {
	mu           sync.RWMutex
	entries      map[int32]schemaEntry
	allowUnknown bool
}

// NewCatalog returns an empty catalog. Use Register or a generated
// RegisterAll to populate it before handing it to a Connection.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[int32]schemaEntry)}
}

// Register adds a decoder for id. Registering the same id twice is a
// programmer error per spec.md §7 and panics, matching the core's stated
// policy of never panicking on adversarial input but always on
// programmer mistakes.
func (c *Catalog) Register(id int32, direction Direction, dec Decoder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[id]; exists {
		panic(fmt.Sprintf("wire: message id %d registered twice", id))
	}
	c.entries[id] = schemaEntry{decoder: dec, direction: direction}
}

// SetAllowUnknown toggles permissive mode: unknown ids decode as an
// UnknownMessage instead of failing (spec.md §4.4.2 item 3).
func (c *Catalog) SetAllowUnknown(allow bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allowUnknown = allow
}

// Decode looks up id and decodes payload with its registered decoder. If
// id is unregistered and the catalog allows unknown ids, it returns an
// UnknownMessage preserving the raw payload bytes instead of failing. The
// returned Reader lets the caller (core/framer) check for unconsumed
// trailing bytes per spec.md §4.4.2 item 3, without the catalog needing
// to know about framing at all.
func (c *Catalog) Decode(id int32, payload []byte) (Message, *codec.Reader, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	allowUnknown := c.allowUnknown
	c.mu.RUnlock()

	r := codec.NewReader(payload)
	if !ok {
		if allowUnknown {
			log.Debugf("id=%d: unregistered, decoding as an opaque UnknownMessage", id)
			return &UnknownMessage{OriginalID: id, Payload: append([]byte(nil), payload...)}, r, nil
		}
		log.Debugf("id=%d: unregistered and allow_unknown is off", id)
		return nil, r, &PacketUnknownId{ID: id}
	}
	msg, err := entry.decoder(r)
	return msg, r, err
}

// Has reports whether id has a registered decoder.
func (c *Catalog) Has(id int32) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[id]
	return ok
}
