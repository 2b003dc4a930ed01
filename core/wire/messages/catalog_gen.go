// Code generated by cmd/genmessages from core/wire/schema/catalog.toml.
// DO NOT EDIT.

package messages

import (
	"io"

	"github.com/protanki-go/protocol/core/codec"
	"github.com/protanki-go/protocol/core/wire"
)

// InitializeEncryption is a generated catalog entry: direction S2C, message id 1, model id 0.
type InitializeEncryption struct {
	Seed []uint8
}

func (m *InitializeEncryption) MessageID() int32          { return 1 }
func (m *InitializeEncryption) ModelID() int32            { return 0 }
func (m *InitializeEncryption) Direction() wire.Direction { return wire.DirectionS2C }

func (m *InitializeEncryption) EncodeFields(w io.Writer) error {
	if err := (codec.Sequence(codec.U8)).Encode(w, m.Seed); err != nil {
		return err
	}
	return nil
}

func decodeInitializeEncryption(r *codec.Reader) (wire.Message, error) {
	m := &InitializeEncryption{}
	var err error
	m.Seed, err = (codec.Sequence(codec.U8)).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EncryptionInitialized is a generated catalog entry: direction C2S, message id 2, model id 0.
type EncryptionInitialized struct {
	LanguageCode string
}

func (m *EncryptionInitialized) MessageID() int32          { return 2 }
func (m *EncryptionInitialized) ModelID() int32            { return 0 }
func (m *EncryptionInitialized) Direction() wire.Direction { return wire.DirectionC2S }

func (m *EncryptionInitialized) EncodeFields(w io.Writer) error {
	if err := (codec.String).Encode(w, m.LanguageCode); err != nil {
		return err
	}
	return nil
}

func decodeEncryptionInitialized(r *codec.Reader) (wire.Message, error) {
	m := &EncryptionInitialized{}
	var err error
	m.LanguageCode, err = (codec.String).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Ping is a generated catalog entry: direction X2X, message id 3, model id 1.
type Ping struct {
}

func (m *Ping) MessageID() int32          { return 3 }
func (m *Ping) ModelID() int32            { return 1 }
func (m *Ping) Direction() wire.Direction { return wire.DirectionX2X }

func (m *Ping) EncodeFields(w io.Writer) error {
	return nil
}

func decodePing(r *codec.Reader) (wire.Message, error) {
	m := &Ping{}
	return m, nil
}

// Pong is a generated catalog entry: direction X2X, message id 4, model id 1.
type Pong struct {
	ClientTime int64
}

func (m *Pong) MessageID() int32          { return 4 }
func (m *Pong) ModelID() int32            { return 1 }
func (m *Pong) Direction() wire.Direction { return wire.DirectionX2X }

func (m *Pong) EncodeFields(w io.Writer) error {
	if err := (codec.I64).Encode(w, m.ClientTime); err != nil {
		return err
	}
	return nil
}

func decodePong(r *codec.Reader) (wire.Message, error) {
	m := &Pong{}
	var err error
	m.ClientTime, err = (codec.I64).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ChatMessageSend is a generated catalog entry: direction C2S, message id 5, model id 2.
type ChatMessageSend struct {
	Channel int32
	Text    string
}

func (m *ChatMessageSend) MessageID() int32          { return 5 }
func (m *ChatMessageSend) ModelID() int32            { return 2 }
func (m *ChatMessageSend) Direction() wire.Direction { return wire.DirectionC2S }

func (m *ChatMessageSend) EncodeFields(w io.Writer) error {
	if err := (codec.I32).Encode(w, m.Channel); err != nil {
		return err
	}
	if err := (codec.String).Encode(w, m.Text); err != nil {
		return err
	}
	return nil
}

func decodeChatMessageSend(r *codec.Reader) (wire.Message, error) {
	m := &ChatMessageSend{}
	var err error
	m.Channel, err = (codec.I32).Decode(r)
	if err != nil {
		return nil, err
	}
	m.Text, err = (codec.String).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ChatMessageReceive is a generated catalog entry: direction S2C, message id 6, model id 2.
type ChatMessageReceive struct {
	SenderID int32
	Channel  int32
	Text     string
}

func (m *ChatMessageReceive) MessageID() int32          { return 6 }
func (m *ChatMessageReceive) ModelID() int32            { return 2 }
func (m *ChatMessageReceive) Direction() wire.Direction { return wire.DirectionS2C }

func (m *ChatMessageReceive) EncodeFields(w io.Writer) error {
	if err := (codec.I32).Encode(w, m.SenderID); err != nil {
		return err
	}
	if err := (codec.I32).Encode(w, m.Channel); err != nil {
		return err
	}
	if err := (codec.String).Encode(w, m.Text); err != nil {
		return err
	}
	return nil
}

func decodeChatMessageReceive(r *codec.Reader) (wire.Message, error) {
	m := &ChatMessageReceive{}
	var err error
	m.SenderID, err = (codec.I32).Decode(r)
	if err != nil {
		return nil, err
	}
	m.Channel, err = (codec.I32).Decode(r)
	if err != nil {
		return nil, err
	}
	m.Text, err = (codec.String).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ResourcesFetchRequest is a generated catalog entry: direction C2S, message id 7, model id 3.
type ResourcesFetchRequest struct {
	ResourceIDs []int32
}

func (m *ResourcesFetchRequest) MessageID() int32          { return 7 }
func (m *ResourcesFetchRequest) ModelID() int32            { return 3 }
func (m *ResourcesFetchRequest) Direction() wire.Direction { return wire.DirectionC2S }

func (m *ResourcesFetchRequest) EncodeFields(w io.Writer) error {
	if err := (codec.Sequence(codec.I32)).Encode(w, m.ResourceIDs); err != nil {
		return err
	}
	return nil
}

func decodeResourcesFetchRequest(r *codec.Reader) (wire.Message, error) {
	m := &ResourcesFetchRequest{}
	var err error
	m.ResourceIDs, err = (codec.Sequence(codec.I32)).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ResourcesFetchResponse is a generated catalog entry: direction S2C, message id 8, model id 3.
type ResourcesFetchResponse struct {
	Resources []*[]uint8
}

func (m *ResourcesFetchResponse) MessageID() int32          { return 8 }
func (m *ResourcesFetchResponse) ModelID() int32            { return 3 }
func (m *ResourcesFetchResponse) Direction() wire.Direction { return wire.DirectionS2C }

func (m *ResourcesFetchResponse) EncodeFields(w io.Writer) error {
	if err := (codec.Sequence(codec.Optional(codec.Sequence(codec.U8)))).Encode(w, m.Resources); err != nil {
		return err
	}
	return nil
}

func decodeResourcesFetchResponse(r *codec.Reader) (wire.Message, error) {
	m := &ResourcesFetchResponse{}
	var err error
	m.Resources, err = (codec.Sequence(codec.Optional(codec.Sequence(codec.U8)))).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EntityMoveUpdate is a generated catalog entry: direction S2C, message id 9, model id 4.
type EntityMoveUpdate struct {
	EntityID int32
	Position codec.Vec3
	Velocity *codec.Vec3
}

func (m *EntityMoveUpdate) MessageID() int32          { return 9 }
func (m *EntityMoveUpdate) ModelID() int32            { return 4 }
func (m *EntityMoveUpdate) Direction() wire.Direction { return wire.DirectionS2C }

func (m *EntityMoveUpdate) EncodeFields(w io.Writer) error {
	if err := (codec.I32).Encode(w, m.EntityID); err != nil {
		return err
	}
	if err := (codec.Vector3).Encode(w, m.Position); err != nil {
		return err
	}
	if err := (codec.Optional(codec.Vector3)).Encode(w, m.Velocity); err != nil {
		return err
	}
	return nil
}

func decodeEntityMoveUpdate(r *codec.Reader) (wire.Message, error) {
	m := &EntityMoveUpdate{}
	var err error
	m.EntityID, err = (codec.I32).Decode(r)
	if err != nil {
		return nil, err
	}
	m.Position, err = (codec.Vector3).Decode(r)
	if err != nil {
		return nil, err
	}
	m.Velocity, err = (codec.Optional(codec.Vector3)).Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterAll populates catalog with the decoders a connection playing
// role should recognize: a server decodes C2S and X2X messages, a client
// decodes S2C and X2X messages (spec.md §4.3's register_all_messages).
func RegisterAll(catalog *wire.Catalog, role wire.Role) {
	type entry struct {
		id        int32
		direction wire.Direction
		decode    wire.Decoder
	}
	entries := []entry{
		{1, wire.DirectionS2C, decodeInitializeEncryption},
		{2, wire.DirectionC2S, decodeEncryptionInitialized},
		{3, wire.DirectionX2X, decodePing},
		{4, wire.DirectionX2X, decodePong},
		{5, wire.DirectionC2S, decodeChatMessageSend},
		{6, wire.DirectionS2C, decodeChatMessageReceive},
		{7, wire.DirectionC2S, decodeResourcesFetchRequest},
		{8, wire.DirectionS2C, decodeResourcesFetchResponse},
		{9, wire.DirectionS2C, decodeEntityMoveUpdate},
	}
	for _, e := range entries {
		if e.direction == wire.DirectionX2X ||
			(role == wire.RoleServer && e.direction == wire.DirectionC2S) ||
			(role == wire.RoleClient && e.direction == wire.DirectionS2C) {
			catalog.Register(e.id, e.direction, e.decode)
		}
	}
}
