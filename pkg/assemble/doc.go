// Package assemble arranges tile variants into a square grid whose touching
// borders all match.
//
// # Index
//
// [BuildIndex] groups the variants by top border, by left border and by the
// (top, left) pair. Buckets keep insertion order, which fixes the order in
// which the search tries candidates and therefore which placement it finds
// first when several exist.
//
// # Search
//
// [Assemble] fills a W×W grid in row-major order. The first cell may be any
// variant. After that, cells are looked up in the index:
//
//   - first cell of a later row: by top border = bottom of the cell above
//   - rest of the first row: by left border = right of the cell to the left
//   - every other cell: by the (top, left) pair
//
// A candidate whose physical tile is already placed is skipped. The search
// keeps its state in an explicit arena (the placed variants and the set of
// used tile ids); every push is undone by the matching pop before the next
// sibling is tried, and the first complete grid ends the search.
//
// Failures are reported with the codes of package errors: SHAPE_MISMATCH
// when the tile count is not a perfect square and UNSATISFIABLE when no
// arrangement exists.
//
// # Parallel seeds
//
// [WithParallelSeeds] spreads the seed loop over a worker pool. Each worker
// owns a private arena; the placement reported is the one reached from the
// lowest seed index, so results match the sequential search.
package assemble
