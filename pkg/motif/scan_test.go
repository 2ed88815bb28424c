package motif

import (
	"testing"

	"github.com/matzehuels/mosaic/pkg/grid"
)

var corner = Motif{Name: "corner", Pattern: grid.MustFromRows("##", "#.")}

func TestScan_CountsEveryAnchor(t *testing.T) {
	img := grid.MustFromRows(
		"##.##",
		"#..#.",
		".....",
	)
	res := Scan(img, corner)
	if res.Counts[grid.Identity] != 2 {
		t.Errorf("identity count = %d, want 2", res.Counts[grid.Identity])
	}
	want := []grid.Point{{X: 0, Y: 0}, {X: 3, Y: 0}}
	if got := res.Matches[grid.Identity]; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("anchors = %v, want %v", got, want)
	}
	if o, n := res.Best(); o != grid.Identity || n != 2 {
		t.Errorf("Best = %v, %d", o, n)
	}
	if got := res.Roughness(); got != img.Count()-2*3 {
		t.Errorf("Roughness = %d", got)
	}
}

func TestScan_OverlappingMatches(t *testing.T) {
	img := grid.MustFromRows("####")
	line := Motif{Name: "line", Pattern: grid.MustFromRows("##")}
	res := Scan(img, line)
	if res.Counts[grid.Identity] != 3 {
		t.Errorf("overlapping matches = %d, want 3", res.Counts[grid.Identity])
	}
	// Vertical orientations cannot fit in a single row.
	if res.Counts[grid.Rot90] != 0 {
		t.Errorf("rot90 matches = %d, want 0", res.Counts[grid.Rot90])
	}
}

func TestScan_PicksRotatedOrientation(t *testing.T) {
	img := grid.MustFromRows(
		".....",
		".#...",
		".##..",
		".....",
	)
	res := Scan(img, corner)
	o, n := res.Best()
	if n != 1 {
		t.Fatalf("best count = %d, want 1", n)
	}
	if want := grid.Apply(corner.Pattern, o); want.Active()[0] != (grid.Point{X: 0, Y: 0}) {
		t.Errorf("best orientation %v does not start with an active pixel", o)
	}
	if res.Roughness() != 0 {
		t.Errorf("Roughness = %d, want 0", res.Roughness())
	}
	mask := res.Mask(img)
	if !mask.Equal(img) {
		t.Errorf("mask:\n%s\nwant:\n%s", mask, img)
	}
}

func TestScan_MotifLargerThanImage(t *testing.T) {
	res := Scan(grid.MustFromRows("##", "##"), SeaMonster)
	for o, n := range res.Counts {
		if n != 0 {
			t.Errorf("orientation %v: %d matches", grid.Orientation(o), n)
		}
	}
	if res.Roughness() != 4 {
		t.Errorf("Roughness = %d, want 4", res.Roughness())
	}
}

func TestBest_TieGoesToFirst(t *testing.T) {
	var r ScanResult
	r.Counts[grid.Rot180] = 2
	r.Counts[grid.FlipRot90] = 2
	if o, n := r.Best(); o != grid.Rot180 || n != 2 {
		t.Errorf("Best = %v, %d; want rot180, 2", o, n)
	}
}
