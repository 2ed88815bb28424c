package source

import (
	"math/rand/v2"

	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// Scramble returns a copy of tiles with each tile put in a random
// orientation and the slice shuffled. The same seed always yields the same
// puzzle.
func Scramble(tiles []tile.Tile, seed uint64) []tile.Tile {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]tile.Tile, len(tiles))
	for i, t := range tiles {
		o := grid.Orientation(rng.IntN(grid.Count))
		out[i] = grid.Apply(t, o)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
