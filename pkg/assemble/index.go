package assemble

import "github.com/matzehuels/mosaic/pkg/tile"

// Index maps border values to the positions of the variants that carry
// them. Positions refer to the slice passed to BuildIndex.
type Index struct {
	byTop     map[tile.Border][]int
	byLeft    map[tile.Border][]int
	byTopLeft map[[2]tile.Border][]int
}

// BuildIndex indexes variants by top, left and (top, left) borders.
func BuildIndex(variants []tile.Variant) *Index {
	idx := &Index{
		byTop:     make(map[tile.Border][]int, len(variants)),
		byLeft:    make(map[tile.Border][]int, len(variants)),
		byTopLeft: make(map[[2]tile.Border][]int, len(variants)),
	}
	for i, v := range variants {
		idx.byTop[v.Top] = append(idx.byTop[v.Top], i)
		idx.byLeft[v.Left] = append(idx.byLeft[v.Left], i)
		key := [2]tile.Border{v.Top, v.Left}
		idx.byTopLeft[key] = append(idx.byTopLeft[key], i)
	}
	return idx
}

// Top returns the variants whose top border equals b.
func (x *Index) Top(b tile.Border) []int { return x.byTop[b] }

// Left returns the variants whose left border equals b.
func (x *Index) Left(b tile.Border) []int { return x.byLeft[b] }

// TopLeft returns the variants whose top and left borders equal top and left.
func (x *Index) TopLeft(top, left tile.Border) []int {
	return x.byTopLeft[[2]tile.Border{top, left}]
}

// Buckets reports how many distinct keys each mapping holds.
func (x *Index) Buckets() (top, left, topLeft int) {
	return len(x.byTop), len(x.byLeft), len(x.byTopLeft)
}
