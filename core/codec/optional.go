package codec

import "io"

// Optional builds a codec for *T from an element codec: an empty-flag
// followed by the T encoding iff not empty (spec.md §4.2, §6.3). A nil
// pointer encodes as empty; decoding an empty value yields nil.
func Optional[T any](elem Codec[T]) Codec[*T] {
	return Codec[*T]{
		Encode: func(w io.Writer, v *T) error {
			if v == nil {
				return Bool.Encode(w, true)
			}
			if err := Bool.Encode(w, false); err != nil {
				return err
			}
			return elem.Encode(w, *v)
		},
		Decode: func(r *Reader) (*T, error) {
			empty, err := Bool.Decode(r)
			if err != nil {
				return nil, err
			}
			if empty {
				return nil, nil
			}
			v, err := elem.Decode(r)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}
