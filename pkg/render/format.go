package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Output formats.
const (
	FormatText = "txt"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatPNG, FormatBMP, FormatTIFF, FormatSVG, FormatDOT}

// IsImage reports whether format draws the stitched image rather than the
// adjacency graph.
func IsImage(format string) bool {
	switch format {
	case FormatText, FormatPNG, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid format %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}

// FormatFromPath derives the format from a file extension. ".tif" and
// ".text" are accepted as aliases.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "tif":
		ext = FormatTIFF
	case "text":
		ext = FormatText
	}
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q", path)
	}
	return ext, ValidateFormat(ext)
}
