package codec

import (
	"fmt"

	logging "gopkg.in/op/go-logging.v1"
)

// log is this package's op/go-logging handle, sharing the process-wide
// backend core/klog.New installs. Per-packet decode failures are logged
// here at trace level before the error is returned, so a caller that
// only sees the aggregated core/metrics counter can still dig into
// which value tripped it.
var log = logging.MustGetLogger("codec")

// ErrVarIntTooLarge is returned when a length value does not fit the
// 3-byte varint encoding (spec.md §4.2).
var ErrVarIntTooLarge = fmt.Errorf("codec: varint length too large, max is %d", maxVarInt)

// Utf8DecodeError wraps a string field whose bytes are not valid UTF-8.
type Utf8DecodeError struct {
	Len int
}

func (e *Utf8DecodeError) Error() string {
	return fmt.Sprintf("codec: %d bytes are not valid utf-8", e.Len)
}

// EnumInvalidOrdinal is returned decoding an enum whose ordinal has no
// matching case in the named enum type.
type EnumInvalidOrdinal struct {
	Value int64
	Name  string
}

func (e *EnumInvalidOrdinal) Error() string {
	return fmt.Sprintf("codec: %d is not a valid ordinal for enum %s", e.Value, e.Name)
}

// EnumUnknown is returned encoding the "unknown" sentinel value of an enum,
// which is never transmitted on the wire.
type EnumUnknown struct {
	Name string
}

func (e *EnumUnknown) Error() string {
	return fmt.Sprintf("codec: refusing to encode the unknown sentinel of enum %s", e.Name)
}
