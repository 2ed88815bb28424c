package assemble

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// Placement is a solved W×W grid of variants in row-major order.
type Placement struct {
	Width int
	Cells []tile.Variant
}

// At returns the variant in the given row and column.
func (p *Placement) At(row, col int) tile.Variant {
	return p.Cells[row*p.Width+col]
}

// CornerIndices returns the row-major positions of the four grid corners:
// top-left, top-right, bottom-left, bottom-right.
func (p *Placement) CornerIndices() [4]int {
	w := p.Width
	return [4]int{0, w - 1, w * (w - 1), w*w - 1}
}

// Corners returns the variants occupying the four grid corners.
func (p *Placement) Corners() [4]tile.Variant {
	var out [4]tile.Variant
	for i, idx := range p.CornerIndices() {
		out[i] = p.Cells[idx]
	}
	return out
}

// TileSize returns the edge length of the placed tiles, or 0 when empty.
func (p *Placement) TileSize() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return p.Cells[0].Size
}

// Verify checks that the placement is complete, that every pair of
// neighbouring cells shares its touching border and that no physical tile
// appears twice.
func (p *Placement) Verify() error {
	w := p.Width
	if len(p.Cells) != w*w {
		return errors.New(errors.ErrCodeInternal, "placement has %d cells, want %d", len(p.Cells), w*w)
	}
	seen := make(map[uint64]int, len(p.Cells))
	for i, c := range p.Cells {
		if prev, dup := seen[c.ID]; dup {
			return errors.New(errors.ErrCodeInternal, "tile %d used at cells %d and %d", c.ID, prev, i)
		}
		seen[c.ID] = i
		row, col := i/w, i%w
		if col > 0 {
			if left := p.Cells[i-1]; left.Right != c.Left {
				return errors.New(errors.ErrCodeInternal,
					"cell (%d,%d): left border %s does not match %s", row, col, c.Left.Format(c.Size), left.Right.Format(left.Size))
			}
		}
		if row > 0 {
			if up := p.Cells[i-w]; up.Bottom != c.Top {
				return errors.New(errors.ErrCodeInternal,
					"cell (%d,%d): top border %s does not match %s", row, col, c.Top.Format(c.Size), up.Bottom.Format(up.Size))
			}
		}
	}
	return nil
}

// CellRef identifies a placed variant by physical id and orientation.
type CellRef struct {
	ID          uint64           `json:"id" bson:"id"`
	Orientation grid.Orientation `json:"orientation" bson:"orientation"`
}

// Refs returns the compact form of the placement.
func (p *Placement) Refs() []CellRef {
	refs := make([]CellRef, len(p.Cells))
	for i, c := range p.Cells {
		refs[i] = CellRef{ID: c.ID, Orientation: c.Orientation}
	}
	return refs
}

// FromRefs rebuilds a placement from its compact form and the physical
// tiles. The result is verified before it is returned.
func FromRefs(tiles []tile.Tile, width int, refs []CellRef) (*Placement, error) {
	if len(refs) != width*width {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%d cells cannot fill a %dx%d grid", len(refs), width, width)
	}
	byID := make(map[uint64]tile.Tile, len(tiles))
	for _, t := range tiles {
		byID[t.ID] = t
	}
	p := &Placement{Width: width, Cells: make([]tile.Variant, len(refs))}
	for i, r := range refs {
		t, ok := byID[r.ID]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown tile %d", r.ID)
		}
		if !r.Orientation.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid orientation for tile %d", r.ID)
		}
		p.Cells[i] = tile.Orient(t, r.Orientation)
	}
	if err := p.Verify(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "rebuilt placement is inconsistent")
	}
	return p, nil
}

// String renders the grid of tile ids.
func (p *Placement) String() string {
	var s string
	for row := 0; row < p.Width; row++ {
		for col := 0; col < p.Width; col++ {
			if col > 0 {
				s += " "
			}
			s += fmt.Sprintf("%d", p.At(row, col).ID)
		}
		s += "\n"
	}
	return s
}
