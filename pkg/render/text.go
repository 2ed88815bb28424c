package render

import (
	"strings"

	"github.com/matzehuels/mosaic/pkg/grid"
)

// Text draws image with '#' for active pixels and '.' for inactive ones.
// Pixels set in mask are drawn as 'O'. mask may be the zero Bitmap.
func Text(image, mask grid.Bitmap) string {
	var b strings.Builder
	b.Grow((image.Width + 1) * image.Height)
	for y := 0; y < image.Height; y++ {
		for x := 0; x < image.Width; x++ {
			switch {
			case mask.At(x, y):
				b.WriteByte('O')
			case image.At(x, y):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
