package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
)

// AdjacencyDOT draws the placement as a grid graph. Each cell is a node
// labelled with its tile id and orientation; edges join horizontal and
// vertical neighbours. Corner cells are highlighted.
func AdjacencyDOT(p *assemble.Placement) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	corners := map[int]bool{}
	for _, i := range p.CornerIndices() {
		corners[i] = true
	}

	for row := 0; row < p.Width; row++ {
		buf.WriteString("  { rank=same;")
		for col := 0; col < p.Width; col++ {
			fmt.Fprintf(&buf, " %s;", nodeName(row, col))
		}
		buf.WriteString(" }\n")
	}
	for row := 0; row < p.Width; row++ {
		for col := 0; col < p.Width; col++ {
			v := p.At(row, col)
			attrs := fmt.Sprintf("label=\"%d\\n%s\"", v.ID, v.Orientation)
			if corners[row*p.Width+col] {
				attrs += ", fillcolor=\"#f9e79f\""
			}
			fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(row, col), attrs)
		}
	}

	buf.WriteString("\n")
	for row := 0; row < p.Width; row++ {
		for col := 0; col < p.Width; col++ {
			if col+1 < p.Width {
				fmt.Fprintf(&buf, "  %s -- %s [constraint=false];\n", nodeName(row, col), nodeName(row, col+1))
			}
			if row+1 < p.Width {
				fmt.Fprintf(&buf, "  %s -- %s;\n", nodeName(row, col), nodeName(row+1, col))
			}
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(row, col int) string {
	return fmt.Sprintf("c%d_%d", row, col)
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
