package grid

import "fmt"

// Orientation identifies one of the eight rotate/flip compositions.
// The zero value is Identity.
type Orientation uint8

const (
	Identity Orientation = iota
	Rot90
	Rot180
	Rot270
	Flip
	FlipRot90
	FlipRot180
	FlipRot270
)

// Count is the size of the orientation group.
const Count = 8

var orientationNames = [Count]string{
	"identity", "rot90", "rot180", "rot270",
	"flip", "flip-rot90", "flip-rot180", "flip-rot270",
}

// Orientations lists the group in canonical order.
var Orientations = [Count]Orientation{
	Identity, Rot90, Rot180, Rot270, Flip, FlipRot90, FlipRot180, FlipRot270,
}

// Rotations returns the number of counterclockwise quarter turns applied
// after the optional flip.
func (o Orientation) Rotations() int { return int(o) % 4 }

// Flipped reports whether the orientation starts with a horizontal flip.
func (o Orientation) Flipped() bool { return o >= Flip }

// Valid reports whether o is one of the eight group members.
func (o Orientation) Valid() bool { return o < Count }

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
	return orientationNames[o]
}

// ParseOrientation is the inverse of Orientation.String.
func ParseOrientation(s string) (Orientation, error) {
	for i, name := range orientationNames {
		if name == s {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Compose builds the orientation reached by an optional flip followed by
// the given number of counterclockwise quarter turns.
func Compose(flip bool, rotations int) Orientation {
	r := ((rotations % 4) + 4) % 4
	if flip {
		return Flip + Orientation(r)
	}
	return Orientation(r)
}

// Transformer is implemented by values that participate in the orientation
// group. Both tiles and bitmaps satisfy it.
type Transformer[T any] interface {
	Rotate90CCW() T
	FlipHorizontal() T
}

// Apply transforms v into orientation o using only the two group primitives.
func Apply[T Transformer[T]](v T, o Orientation) T {
	if o.Flipped() {
		v = v.FlipHorizontal()
	}
	for range o.Rotations() {
		v = v.Rotate90CCW()
	}
	return v
}

// Closure returns all eight orientations of v in canonical order. Each
// member is derived from its predecessor by a single primitive so the
// closure costs seven transforms.
func Closure[T Transformer[T]](v T) [Count]T {
	var out [Count]T
	out[Identity] = v
	for i := Rot90; i <= Rot270; i++ {
		out[i] = out[i-1].Rotate90CCW()
	}
	out[Flip] = v.FlipHorizontal()
	for i := FlipRot90; i <= FlipRot270; i++ {
		out[i] = out[i-1].Rotate90CCW()
	}
	return out
}
