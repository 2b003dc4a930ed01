package codec

import (
	"encoding/binary"
	"io"
	"math"
)

// Codec is the capability set spec.md §3 calls out for a value type:
// encode into a writer, decode from a Reader. Every codec in this package
// is a Codec[T] value rather than a pair of free functions, so struct
// codecs (generated in core/wire) can hold them in field tables.
type Codec[T any] struct {
	Encode func(w io.Writer, v T) error
	Decode func(r *Reader) (T, error)
}

func fixed[T any](size int, put func([]byte, T), get func([]byte) T) Codec[T] {
	return Codec[T]{
		Encode: func(w io.Writer, v T) error {
			buf := make([]byte, size)
			put(buf, v)
			_, err := w.Write(buf)
			return err
		},
		Decode: func(r *Reader) (T, error) {
			var zero T
			b, err := r.ReadN(size)
			if err != nil {
				return zero, err
			}
			return get(b), nil
		},
	}
}

// I8 encodes a signed byte.
var I8 = fixed[int8](1,
	func(b []byte, v int8) { b[0] = byte(v) },
	func(b []byte) int8 { return int8(b[0]) },
)

// U8 encodes an unsigned byte.
var U8 = fixed[uint8](1,
	func(b []byte, v uint8) { b[0] = v },
	func(b []byte) uint8 { return b[0] },
)

// I16 encodes a big-endian signed 16-bit integer.
var I16 = fixed[int16](2,
	func(b []byte, v int16) { binary.BigEndian.PutUint16(b, uint16(v)) },
	func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) },
)

// U16 encodes a big-endian unsigned 16-bit integer.
var U16 = fixed[uint16](2,
	func(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) },
	func(b []byte) uint16 { return binary.BigEndian.Uint16(b) },
)

// I32 encodes a big-endian signed 32-bit integer.
var I32 = fixed[int32](4,
	func(b []byte, v int32) { binary.BigEndian.PutUint32(b, uint32(v)) },
	func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) },
)

// U32 encodes a big-endian unsigned 32-bit integer.
var U32 = fixed[uint32](4,
	func(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) },
	func(b []byte) uint32 { return binary.BigEndian.Uint32(b) },
)

// I64 encodes a big-endian signed 64-bit integer.
var I64 = fixed[int64](8,
	func(b []byte, v int64) { binary.BigEndian.PutUint64(b, uint64(v)) },
	func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) },
)

// U64 encodes a big-endian unsigned 64-bit integer.
var U64 = fixed[uint64](8,
	func(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) },
	func(b []byte) uint64 { return binary.BigEndian.Uint64(b) },
)

// F32 encodes a big-endian IEEE-754 single precision float.
var F32 = fixed[float32](4,
	func(b []byte, v float32) { binary.BigEndian.PutUint32(b, math.Float32bits(v)) },
	func(b []byte) float32 { return math.Float32frombits(binary.BigEndian.Uint32(b)) },
)

// F64 encodes a big-endian IEEE-754 double precision float.
var F64 = fixed[float64](8,
	func(b []byte, v float64) { binary.BigEndian.PutUint64(b, math.Float64bits(v)) },
	func(b []byte) float64 { return math.Float64frombits(binary.BigEndian.Uint64(b)) },
)

// Bool encodes 0x00/0x01; decoding treats any nonzero byte as true
// (spec.md §4.2).
var Bool = Codec[bool]{
	Encode: func(w io.Writer, v bool) error {
		b := byte(0x00)
		if v {
			b = 0x01
		}
		_, err := w.Write([]byte{b})
		return err
	},
	Decode: func(r *Reader) (bool, error) {
		b, err := r.ReadByte()
		if err != nil {
			return false, err
		}
		return b != 0x00, nil
	},
}
