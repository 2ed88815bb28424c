// Package motif finds a fixed pattern in a stitched image and derives the
// image's roughness from the matches.
//
// A [Motif] is a small bitmap; its active pixels are the offsets that must
// all be active in the image for a match. [Scan] tries the motif in all
// eight orientations at every anchor where it fits and counts matches per
// orientation, overlapping matches included. The orientation with the most
// matches is taken as the true alignment of the image, and the roughness is
// the number of active image pixels not explained by those matches:
//
//	roughness = active(image) - best * active(motif)
//
// The formula assumes matches do not overlap each other. That is a property
// of well-formed inputs and is not verified here.
package motif

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
)

// Motif is a named pattern.
type Motif struct {
	Name    string
	Pattern grid.Bitmap
}

// SeaMonster is the standard motif.
var SeaMonster = Motif{
	Name: "sea-monster",
	Pattern: grid.MustFromRows(
		"                  # ",
		"#    ##    ##    ###",
		" #  #  #  #  #  #   ",
	),
}

// Size returns the number of offsets that must be active.
func (m Motif) Size() int { return m.Pattern.Count() }

// Parse reads a motif from text. Rows are lines; '#' marks an active
// offset, any other character is a don't-care. Blank lines before and after
// the pattern are ignored and short rows are padded on the right.
func Parse(name, text string) (Motif, error) {
	var rows []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	for len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return Motif{}, errors.New(errors.ErrCodeInvalidMotif, "motif %q is empty", name)
	}

	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}
	for i, r := range rows {
		if pad := width - len([]rune(r)); pad > 0 {
			rows[i] = r + strings.Repeat(" ", pad)
		}
	}
	pattern, err := grid.FromRows(rows)
	if err != nil {
		return Motif{}, errors.Wrap(errors.ErrCodeInvalidMotif, err, "motif %q", name)
	}
	if pattern.Count() == 0 {
		return Motif{}, errors.New(errors.ErrCodeInvalidMotif, "motif %q has no active pixels", name)
	}
	return Motif{Name: name, Pattern: pattern}, nil
}

// Load reads a motif file. The file name becomes the motif name.
func Load(path string) (Motif, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Motif{}, errors.Wrap(errors.ErrCodeNotFound, err, "motif file %s", path)
		}
		return Motif{}, errors.Wrap(errors.ErrCodeInvalidMotif, err, "read %s", path)
	}
	return Parse(path, string(data))
}
