// Package stitch composes a solved placement into one image.
package stitch

import (
	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/grid"
)

// Stitch pastes the interior of every cell at (col*(E-2), row*(E-2)).
// Interiors are already border-free, so every output pixel is written
// exactly once.
func Stitch(p *assemble.Placement) grid.Bitmap {
	if p.Width == 0 || len(p.Cells) == 0 {
		return grid.New(0, 0)
	}
	inner := p.TileSize() - 2
	out := grid.New(p.Width*inner, p.Width*inner)
	for i, c := range p.Cells {
		row, col := i/p.Width, i%p.Width
		out.Paste(c.Interior, col*inner, row*inner)
	}
	return out
}

// CornerChecksum multiplies the physical ids of the four corner cells.
// An empty placement yields 1.
func CornerChecksum(p *assemble.Placement) uint64 {
	if p.Width == 0 {
		return 1
	}
	var product uint64 = 1
	for _, c := range p.Corners() {
		product *= c.ID
	}
	return product
}

// Origin returns the pixel position at which cell (row, col) starts in the
// stitched image.
func Origin(p *assemble.Placement, row, col int) grid.Point {
	inner := p.TileSize() - 2
	return grid.Point{X: col * inner, Y: row * inner}
}

// CellAt returns the grid cell covering image pixel pt.
func CellAt(p *assemble.Placement, pt grid.Point) (row, col int) {
	inner := p.TileSize() - 2
	return pt.Y / inner, pt.X / inner
}
