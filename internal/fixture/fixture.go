// Package fixture holds the reference puzzle shared by package tests.
package fixture

import (
	"github.com/matzehuels/mosaic/pkg/source"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// Reference results for ReferenceInput.
const (
	ReferenceWidth     = 3
	ReferenceChecksum  = uint64(20899048083289)
	ReferenceRoughness = 273
	ReferenceMonsters  = 2
)

// ReferenceInput is a 3x3 puzzle of 10-pixel tiles.
const ReferenceInput = `Tile 2311:
..##.#..#.
##..#.....
#...##..#.
####.#...#
##.##.###.
##...#.###
.#.#.#..##
..#....#..
###...#.#.
..###..###

Tile 1951:
#.##...##.
#.####...#
.....#..##
#...######
.##.#....#
.###.#####
###.##.##.
.###....#.
..#.#..#.#
#...##.#..

Tile 1171:
####...##.
#..##.#..#
##.#..#.#.
.###.####.
..###.####
.##....##.
.#...####.
#.##.####.
####..#...
.....##...

Tile 1427:
###.##.#..
.#..#.##..
.#.##.#..#
#.#.#.##.#
....#...##
...##..##.
...#.#####
.#.####.#.
..#..###.#
..##.#..#.

Tile 1489:
##.#.#....
..##...#..
.##..##...
..#...#...
#####...#.
#..#.#.#.#
...#.#.#..
##.#...##.
..##.##.##
###.##.#..

Tile 2473:
#....####.
#..#.##...
#.##..#...
######.#.#
.#...#.#.#
.#########
.###.#..#.
########.#
##...##.#.
..###.#.#.

Tile 2971:
..#.#....#
#...###...
#.#.###...
##.##..#..
.#####..##
.#..####.#
#..#.#..#.
..####.###
..#.#.###.
...#.#.#.#

Tile 2729:
...#.#.#.#
####.#....
..#.#.....
....#..#.#
.##..##.#.
.#.####...
####.#.#..
##.####...
##..#.##..
#.##...##.

Tile 3079:
#.#.#####.
.#..######
..#.......
######....
####.#..#.
.#...#.##.
#.#####.##
..#.###...
..#.......
..#.###...

`

// ReferenceTiles parses ReferenceInput. It panics if the fixture is broken.
func ReferenceTiles() []tile.Tile {
	tiles, err := source.ParseString(ReferenceInput)
	if err != nil {
		panic("fixture: " + err.Error())
	}
	return tiles
}
