package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/protanki-go/protocol/core/codec"
	"github.com/stretchr/testify/require"
)

type stubMessage struct{ n int32 }

func (s *stubMessage) MessageID() int32         { return s.n }
func (s *stubMessage) ModelID() int32           { return 0 }
func (s *stubMessage) Direction() Direction     { return DirectionX2X }
func (s *stubMessage) EncodeFields(io.Writer) error { return nil }

func decodeStub(r *codec.Reader) (Message, error) {
	return &stubMessage{}, nil
}

func TestDecodeUnknownIDFailsByDefault(t *testing.T) {
	c := NewCatalog()
	_, _, err := c.Decode(999, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	var unknown *PacketUnknownId
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, int32(999), unknown.ID)
}

func TestDecodeUnknownIDPermissive(t *testing.T) {
	c := NewCatalog()
	c.SetAllowUnknown(true)
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	msg, _, err := c.Decode(999, payload)
	require.NoError(t, err)
	um, ok := msg.(*UnknownMessage)
	require.True(t, ok)
	require.Equal(t, int32(999), um.OriginalID)
	require.Equal(t, payload, um.Payload)
	require.Equal(t, DirectionUnknown, um.Direction())
}

func TestCatalogDecodeTracksTrailingBytes(t *testing.T) {
	c := NewCatalog()
	c.Register(1, DirectionX2X, decodeStub)

	var buf bytes.Buffer
	buf.Write([]byte{1, 2, 3, 4})
	_, r, err := c.Decode(1, buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 4, r.Remaining(), "decodeStub must not consume any bytes")
}
