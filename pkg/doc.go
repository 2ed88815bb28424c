// Package pkg provides the core libraries of mosaic.
//
// # Overview
//
// Mosaic takes a set of square tiles, each showing a fragment of a larger
// image in an unknown rotation and flip, and puts them back together. Two
// tiles may sit next to each other only when their touching borders are
// identical. Once every tile has a place, the borders are stripped and the
// interiors are stitched into one image, which is then searched for a
// motif (by default the sea monster).
//
// # Architecture
//
// The data flow through mosaic:
//
//	tile text
//	    ↓
//	[source] parse tiles
//	    ↓
//	[tile] expand each tile into its eight orientations
//	    ↓
//	[assemble] index borders and backtrack to a valid placement
//	    ↓
//	[stitch] corner checksum and stitched image
//	    ↓
//	[motif] scan all orientations, compute roughness
//	    ↓
//	[render] text, PNG, BMP, TIFF, DOT or SVG
//
// [pipeline] runs these stages with a [cache] in front of the search, and
// [store] keeps finished runs. [grid] holds the bitmap and orientation types
// every stage shares.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mosaic/pkg/assemble"
//	    "github.com/matzehuels/mosaic/pkg/motif"
//	    "github.com/matzehuels/mosaic/pkg/source"
//	    "github.com/matzehuels/mosaic/pkg/stitch"
//	    "github.com/matzehuels/mosaic/pkg/tile"
//	)
//
//	tiles, _ := source.ReadFile("tiles.txt")
//	p, _ := assemble.Assemble(tile.ExpandAll(tiles), len(tiles))
//	checksum := stitch.CornerChecksum(p)
//	roughness := motif.Roughness(stitch.Stitch(p), motif.SeaMonster)
//
// # Infrastructure
//
// [cache] stores placements in files or redis. [store] persists runs as JSON
// files or in MongoDB. [config] reads mosaic.toml. [observability] exposes
// hooks for logging and metrics. [errors] defines the coded error type used
// throughout.
//
// [source]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/source
// [tile]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/tile
// [assemble]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/assemble
// [stitch]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/stitch
// [motif]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/motif
// [render]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/store
// [grid]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/grid
// [config]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/errors
package pkg
