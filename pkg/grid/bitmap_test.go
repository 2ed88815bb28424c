package grid

import (
	"slices"
	"testing"
)

func asymmetric() Bitmap {
	return MustFromRows(
		"##..",
		"#...",
		"..#.",
	)
}

func TestFromRows(t *testing.T) {
	b, err := FromRows([]string{"#.", ".#"})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if b.Width != 2 || b.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", b.Width, b.Height)
	}
	if !b.At(0, 0) || b.At(1, 0) || b.At(0, 1) || !b.At(1, 1) {
		t.Errorf("unexpected pixels: %v", b.Pix)
	}

	if _, err := FromRows([]string{"#.", "#"}); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestBitmap_Rotate90CCW(t *testing.T) {
	b := MustFromRows(
		"#..",
		"...",
	)
	got := b.Rotate90CCW()
	want := MustFromRows(
		"..",
		"..",
		"#.",
	)
	if !got.Equal(want) {
		t.Errorf("Rotate90CCW:\n%s\nwant:\n%s", got, want)
	}
}

func TestBitmap_FlipHorizontal(t *testing.T) {
	got := asymmetric().FlipHorizontal()
	want := MustFromRows(
		"..##",
		"...#",
		".#..",
	)
	if !got.Equal(want) {
		t.Errorf("FlipHorizontal:\n%s\nwant:\n%s", got, want)
	}
}

func TestBitmap_GroupCycles(t *testing.T) {
	b := asymmetric()

	r := b
	for range 4 {
		r = r.Rotate90CCW()
	}
	if !r.Equal(b) {
		t.Errorf("four rotations changed the bitmap:\n%s", r)
	}

	if f := b.FlipHorizontal().FlipHorizontal(); !f.Equal(b) {
		t.Errorf("two flips changed the bitmap:\n%s", f)
	}
}

func TestBitmap_OrientationsDistinct(t *testing.T) {
	all := asymmetric().Orientations()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].Equal(all[j]) {
				t.Errorf("orientations %v and %v coincide", Orientation(i), Orientation(j))
			}
		}
	}
}

func TestApplyMatchesClosure(t *testing.T) {
	b := asymmetric()
	all := b.Orientations()
	for _, o := range Orientations {
		if got := Apply(b, o); !got.Equal(all[o]) {
			t.Errorf("Apply(%v) differs from closure", o)
		}
	}
}

func TestBitmap_CropPaste(t *testing.T) {
	b := asymmetric()
	c := b.Crop(1, 1, 2, 2)
	if want := MustFromRows("..", ".#"); !c.Equal(want) {
		t.Errorf("Crop:\n%s\nwant:\n%s", c, want)
	}

	dst := New(4, 4)
	dst.Paste(MustFromRows("##", "#."), 2, 1)
	want := MustFromRows(
		"....",
		"..##",
		"..#.",
		"....",
	)
	if !dst.Equal(want) {
		t.Errorf("Paste:\n%s\nwant:\n%s", dst, want)
	}
}

func TestBitmap_CountActive(t *testing.T) {
	b := asymmetric()
	if got := b.Count(); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	want := []Point{{0, 0}, {1, 0}, {0, 1}, {2, 2}}
	if got := b.Active(); !slices.Equal(got, want) {
		t.Errorf("Active = %v, want %v", got, want)
	}
}

func TestOrientation_String(t *testing.T) {
	for _, o := range Orientations {
		parsed, err := ParseOrientation(o.String())
		if err != nil {
			t.Fatalf("ParseOrientation(%q): %v", o, err)
		}
		if parsed != o {
			t.Errorf("ParseOrientation(%q) = %v", o, parsed)
		}
	}
	if _, err := ParseOrientation("sideways"); err == nil {
		t.Error("expected error for unknown orientation")
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		flip bool
		rot  int
		want Orientation
	}{
		{false, 0, Identity},
		{false, 3, Rot270},
		{false, 5, Rot90},
		{false, -1, Rot270},
		{true, 0, Flip},
		{true, 2, FlipRot180},
	}
	for _, tt := range tests {
		if got := Compose(tt.flip, tt.rot); got != tt.want {
			t.Errorf("Compose(%v, %d) = %v, want %v", tt.flip, tt.rot, got, tt.want)
		}
	}
}
