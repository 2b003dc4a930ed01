package codec

import "io"

// Ordinal is the set of integer kinds an enum's underlying type may use.
// spec.md §6.3 says "usually i32"; the constraint is kept open for the
// rare u8-backed enum.
type Ordinal interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8
}

// Enum builds a codec for an enum type K from its underlying integer
// encoding and the set of ordinals the catalog considers valid. unknown is
// the sentinel value a decoder may return for recognized-but-unmapped
// ordinals; it is never itself encodable (spec.md §4.2).
func Enum[K Ordinal](name string, underlying Codec[K], valid map[K]bool, unknown K) Codec[K] {
	return Codec[K]{
		Encode: func(w io.Writer, v K) error {
			if v == unknown {
				log.Debugf("enum %s: refusing to encode the unknown sentinel", name)
				return &EnumUnknown{Name: name}
			}
			return underlying.Encode(w, v)
		},
		Decode: func(r *Reader) (K, error) {
			v, err := underlying.Decode(r)
			if err != nil {
				return unknown, err
			}
			if !valid[v] {
				log.Debugf("enum %s: %d is not a valid ordinal", name, int64(v))
				return unknown, &EnumInvalidOrdinal{Value: int64(v), Name: name}
			}
			return v, nil
		},
	}
}
