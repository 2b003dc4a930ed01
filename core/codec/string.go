package codec

import (
	"io"
	"unicode/utf8"
)

// String encodes an empty-flag followed by a u32 byte length and the raw
// UTF-8 bytes when non-empty (spec.md §4.2, §6.3).
var String = Codec[string]{
	Encode: func(w io.Writer, v string) error {
		if v == "" {
			return Bool.Encode(w, true) // empty = true
		}
		if err := Bool.Encode(w, false); err != nil {
			return err
		}
		if err := U32.Encode(w, uint32(len(v))); err != nil {
			return err
		}
		_, err := io.WriteString(w, v)
		return err
	},
	Decode: func(r *Reader) (string, error) {
		empty, err := Bool.Decode(r)
		if err != nil {
			return "", err
		}
		if empty {
			return "", nil
		}
		n, err := U32.Decode(r)
		if err != nil {
			return "", err
		}
		b, err := r.ReadN(int(n))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			log.Debugf("string: %d bytes failed utf-8 validation", len(b))
			return "", &Utf8DecodeError{Len: len(b)}
		}
		return string(b), nil
	},
}
