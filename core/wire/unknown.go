package wire

import "io"

// UnknownMessage is the opaque record a permissive Catalog synthesizes for
// an unrecognized message id, preserving the original bytes so a caller
// can log or forward them without the core needing to understand the
// payload shape (spec.md §4.4.2 item 3; grounded on
// protocol/src/packets/unknown.rs in original_source/).
type UnknownMessage struct {
	OriginalID int32
	Payload    []byte
}

func (m *UnknownMessage) MessageID() int32      { return m.OriginalID }
func (m *UnknownMessage) ModelID() int32        { return -1 }
func (m *UnknownMessage) Direction() Direction  { return DirectionUnknown }
func (m *UnknownMessage) EncodeFields(w io.Writer) error {
	_, err := w.Write(m.Payload)
	return err
}
