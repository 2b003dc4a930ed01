package codec

import "io"

// Sequence builds a codec for []T from an element codec: a u32 big-endian
// count followed by that many encodings of T (spec.md §4.2, §6.3).
func Sequence[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Encode: func(w io.Writer, v []T) error {
			if err := U32.Encode(w, uint32(len(v))); err != nil {
				return err
			}
			for _, item := range v {
				if err := elem.Encode(w, item); err != nil {
					return err
				}
			}
			return nil
		},
		Decode: func(r *Reader) ([]T, error) {
			n, err := U32.Decode(r)
			if err != nil {
				return nil, err
			}
			// Cap the up-front allocation: an adversarial count field must
			// not be able to trigger a multi-gigabyte allocation before a
			// single byte of the claimed elements has actually arrived.
			prealloc := n
			if rem := uint32(r.Remaining()); prealloc > rem {
				prealloc = rem
			}
			out := make([]T, 0, prealloc)
			for i := uint32(0); i < n; i++ {
				item, err := elem.Decode(r)
				if err != nil {
					return nil, err
				}
				out = append(out, item)
			}
			return out, nil
		},
	}
}
