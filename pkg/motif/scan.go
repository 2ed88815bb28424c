package motif

import "github.com/matzehuels/mosaic/pkg/grid"

// ScanResult records the matches of one motif in one image.
type ScanResult struct {
	Motif   Motif
	Counts  [grid.Count]int          // matches per orientation
	Matches [grid.Count][]grid.Point // anchors (top-left corners) per orientation

	Active int // active pixels in the scanned image
}

// Scan counts motif matches in every orientation. Anchors range over every
// position where the oriented motif fits inside image; an orientation that
// does not fit at all simply has no matches.
func Scan(image grid.Bitmap, m Motif) ScanResult {
	res := ScanResult{Motif: m, Active: image.Count()}
	for o, pattern := range m.Pattern.Orientations() {
		offsets := pattern.Active()
		for top := 0; top+pattern.Height <= image.Height; top++ {
			for left := 0; left+pattern.Width <= image.Width; left++ {
				if matchesAt(image, offsets, left, top) {
					res.Matches[o] = append(res.Matches[o], grid.Point{X: left, Y: top})
				}
			}
		}
		res.Counts[o] = len(res.Matches[o])
	}
	return res
}

func matchesAt(image grid.Bitmap, offsets []grid.Point, left, top int) bool {
	for _, p := range offsets {
		if !image.Pix[(top+p.Y)*image.Width+left+p.X] {
			return false
		}
	}
	return true
}

// Best returns the orientation with the most matches and its count. Ties
// go to the earlier orientation, so an image without matches reports
// Identity and zero.
func (r ScanResult) Best() (grid.Orientation, int) {
	best := grid.Identity
	for _, o := range grid.Orientations {
		if r.Counts[o] > r.Counts[best] {
			best = o
		}
	}
	return best, r.Counts[best]
}

// Roughness returns the active pixels not covered by best-orientation
// matches.
func (r ScanResult) Roughness() int {
	_, n := r.Best()
	return r.Active - n*r.Motif.Size()
}

// Mask returns an image-sized bitmap with the pixels of every
// best-orientation match set.
func (r ScanResult) Mask(image grid.Bitmap) grid.Bitmap {
	mask := grid.New(image.Width, image.Height)
	o, _ := r.Best()
	offsets := grid.Apply(r.Motif.Pattern, o).Active()
	for _, anchor := range r.Matches[o] {
		for _, p := range offsets {
			mask.Set(anchor.X+p.X, anchor.Y+p.Y, true)
		}
	}
	return mask
}

// Roughness scans image for m and returns its roughness.
func Roughness(image grid.Bitmap, m Motif) int {
	return Scan(image, m).Roughness()
}
