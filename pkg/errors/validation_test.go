package errors

import (
	"testing"
)

func TestValidateTileID(t *testing.T) {
	tests := []struct {
		name    string
		id      uint64
		wantErr bool
	}{
		{"typical", 2311, false},
		{"one", 1, false},
		{"max", MaxTileID, false},
		{"zero", 0, true},
		{"too large", MaxTileID + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTileID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTileID(%d) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTile) {
				t.Errorf("ValidateTileID(%d) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidTile)
			}
		})
	}
}

func TestValidateEdgeSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{10, false},
		{3, false},
		{16, false},
		{2, true},
		{0, true},
		{17, true},
	}

	for _, tt := range tests {
		if err := ValidateEdgeSize(tt.size); (err != nil) != tt.wantErr {
			t.Errorf("ValidateEdgeSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "image.png", false},
		{"nested", "out/image.png", false},
		{"absolute", "/tmp/image.png", false},
		{"dots in name", "image..png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"traversal", "../image.png", true},
		{"nested traversal", "out/../../etc/passwd", true},
		{"null byte", "image\x00.png", true},
		{"newline", "image\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
