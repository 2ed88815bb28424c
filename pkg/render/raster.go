package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
)

// Palette indices used by Raster.
const (
	Water uint8 = iota
	Wave
	Monster
)

// Palette maps pixel classes to colors.
var Palette = color.Palette{
	Water:   color.RGBA{0x0b, 0x2a, 0x4a, 0xff},
	Wave:    color.RGBA{0x6f, 0xb7, 0xd6, 0xff},
	Monster: color.RGBA{0x2e, 0xcc, 0x71, 0xff},
}

// MaxScale bounds the pixel magnification.
const MaxScale = 64

// Raster draws image as a paletted picture where every pixel becomes a
// scale×scale block. Pixels set in mask use the Monster color.
func Raster(img, mask grid.Bitmap, scale int) *image.Paletted {
	scale = max(1, min(scale, MaxScale))
	out := image.NewPaletted(image.Rect(0, 0, img.Width*scale, img.Height*scale), Palette)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := Water
			switch {
			case mask.At(x, y):
				c = Monster
			case img.At(x, y):
				c = Wave
			}
			if c == Water {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				row := out.Pix[(y*scale+dy)*out.Stride:]
				for dx := 0; dx < scale; dx++ {
					row[x*scale+dx] = c
				}
			}
		}
	}
	return out
}

// Encode writes the image in one of the image formats.
func Encode(w io.Writer, format string, img, mask grid.Bitmap, scale int) error {
	if format == FormatText {
		_, err := io.WriteString(w, Text(img, mask))
		return err
	}
	pic := Raster(img, mask, scale)
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, pic)
	case FormatBMP:
		err = bmp.Encode(w, pic)
	case FormatTIFF:
		err = tiff.Encode(w, pic, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "%q is not an image format", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}
