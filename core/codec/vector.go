package codec

import "io"

// Vec3 is a 3-component float32 vector, the shape spec.md §3/§6.3 uses for
// positions and velocities.
type Vec3 struct {
	X, Y, Z float32
}

// Vector3 encodes three consecutive big-endian f32 values: x, y, z.
var Vector3 = Codec[Vec3]{
	Encode: func(w io.Writer, v Vec3) error {
		if err := F32.Encode(w, v.X); err != nil {
			return err
		}
		if err := F32.Encode(w, v.Y); err != nil {
			return err
		}
		return F32.Encode(w, v.Z)
	},
	Decode: func(r *Reader) (Vec3, error) {
		x, err := F32.Decode(r)
		if err != nil {
			return Vec3{}, err
		}
		y, err := F32.Decode(r)
		if err != nil {
			return Vec3{}, err
		}
		z, err := F32.Decode(r)
		if err != nil {
			return Vec3{}, err
		}
		return Vec3{X: x, Y: y, Z: z}, nil
	},
}
