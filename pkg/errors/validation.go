package errors

import (
	"strings"
	"unicode"
)

// MaxTileID bounds tile identifiers so corner checksums of a 2×2 grid or
// larger cannot silently wrap a uint64.
const MaxTileID = 1<<16 - 1

// ValidateTileID checks a parsed tile identifier.
func ValidateTileID(id uint64) error {
	if id == 0 {
		return New(ErrCodeInvalidTile, "tile id must be positive")
	}
	if id > MaxTileID {
		return New(ErrCodeInvalidTile, "tile id %d too large (max %d)", id, MaxTileID)
	}
	return nil
}

// ValidateEdgeSize checks a tile edge length. Borders are stored as 16-bit
// patterns and every tile needs a non-empty interior.
func ValidateEdgeSize(size int) error {
	if size < 3 {
		return New(ErrCodeInvalidTile, "tile edge %d too small (min 3)", size)
	}
	if size > 16 {
		return New(ErrCodeInvalidTile, "tile edge %d too large (max 16)", size)
	}
	return nil
}

// ValidatePath validates a user-supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
