// Package wire defines the message catalog: the set of typed payloads a
// Connection (core/framer) can frame, plus the registry that maps a wire
// message id to a decoder. This is spec.md's C3.
package wire

import (
	"io"

	"github.com/protanki-go/protocol/core/codec"
)

// Direction tags which side of the connection originates a message type.
// X2X messages may be sent by either side.
type Direction int

const (
	// DirectionC2S messages are sent client to server.
	DirectionC2S Direction = iota
	// DirectionS2C messages are sent server to client.
	DirectionS2C
	// DirectionX2X messages may be sent by either side.
	DirectionX2X
	// DirectionUnknown tags a synthesized UnknownMessage produced in
	// permissive-catalog mode; it is not a real schema direction (spec.md
	// §9 Open Question (c)).
	DirectionUnknown
)

func (d Direction) String() string {
	switch d {
	case DirectionC2S:
		return "C2S"
	case DirectionS2C:
		return "S2C"
	case DirectionX2X:
		return "X2X"
	default:
		return "unknown"
	}
}

// Role is which side of the connection a Catalog is decoding for: a
// server's catalog decodes C2S+X2X messages, a client's decodes S2C+X2X.
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

// Message is the decoded, typed payload of a frame. ModelID is a secondary
// grouping tag used only for log filtering (spec.md GLOSSARY); it carries
// no protocol meaning.
type Message interface {
	MessageID() int32
	ModelID() int32
	Direction() Direction
	EncodeFields(w io.Writer) error
}

// Decoder builds a zero-value Message of a known type and decodes its
// fields from r. Generated by cmd/genmessages, one per catalog entry.
type Decoder func(r *codec.Reader) (Message, error)
