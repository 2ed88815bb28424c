package grid

import (
	"fmt"
	"strings"
)

// Point is a pixel coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bitmap is a row-major boolean raster.
type Bitmap struct {
	Width  int
	Height int
	Pix    []bool
}

// New returns an all-inactive bitmap of the given size.
func New(width, height int) Bitmap {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative size %dx%d", width, height))
	}
	return Bitmap{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// FromRows builds a bitmap from equal-length rows where '#' marks an active
// pixel. Any other rune is inactive.
func FromRows(rows []string) (Bitmap, error) {
	if len(rows) == 0 {
		return Bitmap{}, nil
	}
	width := len([]rune(rows[0]))
	b := New(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return Bitmap{}, fmt.Errorf("row %d has width %d, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			b.Pix[y*width+x] = r == '#'
		}
	}
	return b, nil
}

// MustFromRows is like FromRows but panics on ragged input.
// It is intended for package-level fixtures.
func MustFromRows(rows ...string) Bitmap {
	b, err := FromRows(rows)
	if err != nil {
		panic("grid: " + err.Error())
	}
	return b
}

// At reports whether pixel (x, y) is active. Out-of-range reads are inactive.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

// Set writes pixel (x, y). It panics when the coordinate is out of range.
func (b Bitmap) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		panic(fmt.Sprintf("grid: Set(%d, %d) outside %dx%d", x, y, b.Width, b.Height))
	}
	b.Pix[y*b.Width+x] = v
}

// Count returns the number of active pixels.
func (b Bitmap) Count() int {
	n := 0
	for _, p := range b.Pix {
		if p {
			n++
		}
	}
	return n
}

// Active lists active pixel coordinates in row-major order.
func (b Bitmap) Active() []Point {
	pts := make([]Point, 0, b.Count())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Pix[y*b.Width+x] {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Clone returns a deep copy.
func (b Bitmap) Clone() Bitmap {
	c := Bitmap{Width: b.Width, Height: b.Height, Pix: make([]bool, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether two bitmaps have the same size and pixels.
func (b Bitmap) Equal(o Bitmap) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Rotate90CCW returns the bitmap turned a quarter counterclockwise.
// The result is Height wide and Width tall.
func (b Bitmap) Rotate90CCW() Bitmap {
	out := New(b.Height, b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			rx, ry := y, b.Width-1-x
			out.Pix[ry*out.Width+rx] = b.Pix[y*b.Width+x]
		}
	}
	return out
}

// FlipHorizontal returns the bitmap mirrored left to right.
func (b Bitmap) FlipHorizontal() Bitmap {
	out := New(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		row := y * b.Width
		for x := 0; x < b.Width; x++ {
			out.Pix[row+b.Width-1-x] = b.Pix[row+x]
		}
	}
	return out
}

// Orientations returns the eight transforms of b in canonical order.
func (b Bitmap) Orientations() [Count]Bitmap {
	return Closure(b)
}

// Crop returns the w×h sub-bitmap whose top-left corner is (x, y).
func (b Bitmap) Crop(x, y, w, h int) Bitmap {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > b.Width || y+h > b.Height {
		panic(fmt.Sprintf("grid: Crop(%d, %d, %d, %d) outside %dx%d", x, y, w, h, b.Width, b.Height))
	}
	out := New(w, h)
	for row := 0; row < h; row++ {
		src := (y+row)*b.Width + x
		copy(out.Pix[row*w:(row+1)*w], b.Pix[src:src+w])
	}
	return out
}

// Paste copies src into b with its top-left corner at (x, y).
// src must fit entirely inside b.
func (b Bitmap) Paste(src Bitmap, x, y int) {
	if x < 0 || y < 0 || x+src.Width > b.Width || y+src.Height > b.Height {
		panic(fmt.Sprintf("grid: Paste %dx%d at (%d, %d) outside %dx%d",
			src.Width, src.Height, x, y, b.Width, b.Height))
	}
	for row := 0; row < src.Height; row++ {
		dst := (y+row)*b.Width + x
		copy(b.Pix[dst:dst+src.Width], src.Pix[row*src.Width:(row+1)*src.Width])
	}
}

// Rows renders the bitmap as '#'/'.' lines.
func (b Bitmap) Rows() []string {
	rows := make([]string, b.Height)
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		sb.Reset()
		for x := 0; x < b.Width; x++ {
			if b.Pix[y*b.Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// String implements fmt.Stringer using one line per row.
func (b Bitmap) String() string {
	if b.Height == 0 {
		return ""
	}
	return strings.Join(b.Rows(), "\n") + "\n"
}
