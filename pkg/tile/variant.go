package tile

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/grid"
)

// Variant is a tile in one of its eight orientations.
type Variant struct {
	Tile
	Orientation grid.Orientation
}

func (v Variant) String() string {
	return fmt.Sprintf("%d/%s", v.ID, v.Orientation)
}

// Expand returns the eight orientations of t in canonical order.
func Expand(t Tile) [grid.Count]Variant {
	var out [grid.Count]Variant
	for i, tt := range grid.Closure(t) {
		out[i] = Variant{Tile: tt, Orientation: grid.Orientation(i)}
	}
	return out
}

// ExpandAll expands every tile, keeping input order: the eight variants of
// tiles[0] come first.
func ExpandAll(tiles []Tile) []Variant {
	out := make([]Variant, 0, len(tiles)*grid.Count)
	for _, t := range tiles {
		vs := Expand(t)
		out = append(out, vs[:]...)
	}
	return out
}

// Orient returns t in orientation o.
func Orient(t Tile, o grid.Orientation) Variant {
	return Variant{Tile: grid.Apply(t, o), Orientation: o}
}
