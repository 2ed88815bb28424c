// Package render turns stitched images and placements into output files.
//
// Images can be written as text, PNG, BMP or TIFF. Motif pixels are drawn
// in a distinct color (or as 'O' in text) when a mask is supplied.
//
//	var buf bytes.Buffer
//	err := render.Encode(&buf, render.FormatPNG, image, mask, 4)
//
// The placement itself can be drawn as an adjacency graph. [AdjacencyDOT]
// produces Graphviz DOT source and [RenderSVG] lays it out in-process with
// go-graphviz:
//
//	svg, err := render.RenderSVG(render.AdjacencyDOT(placement))
package render
