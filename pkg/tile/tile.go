// Package tile models the square image fragments of a mosaic and their
// eight orientations.
//
// A [Tile] keeps its four edges as [Border] bit patterns and drops the edge
// pixels from its interior, which is what ends up in the stitched image.
// Borders are read in a fixed direction per edge (top and bottom left to
// right, left and right top to bottom, first pixel in the most significant
// bit), so two tiles fit together exactly when the touching borders are
// equal.
//
// [Expand] produces the eight [Variant]s of a tile by composing
// [Tile.Rotate90CCW] and [Tile.FlipHorizontal]; every variant keeps the
// physical tile's ID.
package tile

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
)

// Border is an edge bit pattern of up to 16 pixels.
type Border uint16

// ReverseBits reverses the order of the low size bits of b.
// Applying it twice returns the original pattern.
func ReverseBits(b Border, size int) Border {
	var r Border
	for range size {
		r = r<<1 | b&1
		b >>= 1
	}
	return r
}

// Format renders b as a size-wide '#'/'.' string, most significant bit first.
func (b Border) Format(size int) string {
	buf := make([]byte, size)
	for i := range size {
		if b&(1<<(size-1-i)) != 0 {
			buf[i] = '#'
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

// Tile is one physical fragment.
type Tile struct {
	ID       uint64
	Size     int // edge length E, including the border pixels
	Top      Border
	Left     Border
	Bottom   Border
	Right    Border
	Interior grid.Bitmap // (Size-2)×(Size-2)
}

// New builds a tile from its full Size×Size pixel grid.
func New(id uint64, pixels grid.Bitmap) (Tile, error) {
	if err := errors.ValidateTileID(id); err != nil {
		return Tile{}, err
	}
	if pixels.Width != pixels.Height {
		return Tile{}, errors.New(errors.ErrCodeInvalidTile,
			"tile %d is %dx%d, want a square", id, pixels.Width, pixels.Height)
	}
	size := pixels.Width
	if err := errors.ValidateEdgeSize(size); err != nil {
		return Tile{}, errors.Wrap(errors.ErrCodeInvalidTile, err, "tile %d", id)
	}

	t := Tile{ID: id, Size: size}
	for i := range size {
		t.Top = t.Top<<1 | bit(pixels.At(i, 0))
		t.Bottom = t.Bottom<<1 | bit(pixels.At(i, size-1))
		t.Left = t.Left<<1 | bit(pixels.At(0, i))
		t.Right = t.Right<<1 | bit(pixels.At(size-1, i))
	}
	t.Interior = pixels.Crop(1, 1, size-2, size-2)
	return t, nil
}

func bit(v bool) Border {
	if v {
		return 1
	}
	return 0
}

// Pixels reconstructs the full Size×Size grid from borders and interior.
func (t Tile) Pixels() grid.Bitmap {
	n := t.Size
	px := grid.New(n, n)
	for i := range n {
		mask := Border(1) << (n - 1 - i)
		px.Set(i, 0, t.Top&mask != 0)
		px.Set(i, n-1, t.Bottom&mask != 0)
		px.Set(0, i, t.Left&mask != 0)
		px.Set(n-1, i, t.Right&mask != 0)
	}
	px.Paste(t.Interior, 1, 1)
	return px
}

// Rotate90CCW turns the tile a quarter counterclockwise.
func (t Tile) Rotate90CCW() Tile {
	return Tile{
		ID:       t.ID,
		Size:     t.Size,
		Top:      t.Right,
		Left:     ReverseBits(t.Top, t.Size),
		Bottom:   t.Left,
		Right:    ReverseBits(t.Bottom, t.Size),
		Interior: t.Interior.Rotate90CCW(),
	}
}

// FlipHorizontal mirrors the tile left to right.
func (t Tile) FlipHorizontal() Tile {
	return Tile{
		ID:       t.ID,
		Size:     t.Size,
		Top:      ReverseBits(t.Top, t.Size),
		Left:     t.Right,
		Bottom:   ReverseBits(t.Bottom, t.Size),
		Right:    t.Left,
		Interior: t.Interior.FlipHorizontal(),
	}
}

// Equal reports whether two tiles have the same id, borders and interior.
func (t Tile) Equal(o Tile) bool {
	return t.ID == o.ID && t.Size == o.Size &&
		t.Top == o.Top && t.Left == o.Left && t.Bottom == o.Bottom && t.Right == o.Right &&
		t.Interior.Equal(o.Interior)
}

func (t Tile) String() string {
	return fmt.Sprintf("Tile %d", t.ID)
}
