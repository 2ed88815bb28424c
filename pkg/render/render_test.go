package render

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/mosaic/internal/fixture"
	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/tile"
)

func solved(t *testing.T) *assemble.Placement {
	t.Helper()
	tiles := fixture.ReferenceTiles()
	p, err := assemble.Assemble(tile.ExpandAll(tiles), len(tiles))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestText(t *testing.T) {
	img := grid.MustFromRows("#.#", "##.")
	mask := grid.New(3, 2)
	mask.Set(0, 1, true)

	want := "#.#\nO#.\n"
	if got := Text(img, mask); got != want {
		t.Errorf("Text =\n%s\nwant\n%s", got, want)
	}
	if got := Text(img, grid.Bitmap{}); got != img.String() {
		t.Errorf("Text without mask = %q, want %q", got, img.String())
	}
}

func TestRaster(t *testing.T) {
	img := grid.MustFromRows("#.", ".#")
	mask := grid.New(2, 2)
	mask.Set(1, 1, true)

	pic := Raster(img, mask, 3)
	if b := pic.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, Wave},
		{2, 2, Wave},
		{3, 0, Water},
		{5, 5, Monster},
		{0, 5, Water},
	}
	for _, tt := range tests {
		if got := pic.ColorIndexAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	if b := Raster(img, mask, 0).Bounds(); b.Dx() != 2 {
		t.Errorf("scale 0 should clamp to 1, got width %d", b.Dx())
	}
}

func TestEncode(t *testing.T) {
	img := grid.MustFromRows("#..#", ".##.", "#..#")
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, img, grid.Bitmap{}, 2); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := got.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("bounds = %v, want 8x6", b)
			}
		})
	}

	var buf bytes.Buffer
	if err := Encode(&buf, FormatText, img, grid.Bitmap{}, 1); err != nil {
		t.Fatal(err)
	}
	if buf.String() != img.String() {
		t.Errorf("text encoding = %q", buf.String())
	}

	if err := Encode(&buf, FormatSVG, img, grid.Bitmap{}, 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("svg is not an image format, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"out.PNG", FormatPNG, false},
		{"dir/out.tif", FormatTIFF, false},
		{"out.tiff", FormatTIFF, false},
		{"out.bmp", FormatBMP, false},
		{"grid.dot", FormatDOT, false},
		{"grid.svg", FormatSVG, false},
		{"image.text", FormatText, false},
		{"out.jpg", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdjacencyDOT(t *testing.T) {
	p := solved(t)
	dot := AdjacencyDOT(p)

	if n := strings.Count(dot, " -- "); n != 2*p.Width*(p.Width-1) {
		t.Errorf("edge count = %d, want %d", n, 2*p.Width*(p.Width-1))
	}
	for _, c := range p.Cells {
		if !strings.Contains(dot, c.Orientation.String()) {
			t.Errorf("DOT missing orientation %s", c.Orientation)
		}
	}
	if n := strings.Count(dot, "#f9e79f"); n != 4 {
		t.Errorf("highlighted corners = %d, want 4", n)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(AdjacencyDOT(solved(t)))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(svg, []byte("1951")) {
		t.Error("SVG missing tile label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", got)
	}
	plain := []byte("<svg><g/></svg>")
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
