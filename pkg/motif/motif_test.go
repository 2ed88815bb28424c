package motif

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
)

func TestSeaMonster(t *testing.T) {
	if SeaMonster.Pattern.Width != 20 || SeaMonster.Pattern.Height != 3 {
		t.Errorf("size = %dx%d, want 20x3", SeaMonster.Pattern.Width, SeaMonster.Pattern.Height)
	}
	if got := SeaMonster.Size(); got != 15 {
		t.Errorf("Size = %d, want 15", got)
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("arrow", "\n #\n###\n\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := grid.MustFromRows(".#.", "###")
	if !m.Pattern.Equal(want) {
		t.Errorf("pattern:\n%s\nwant:\n%s", m.Pattern, want)
	}
	if m.Name != "arrow" || m.Size() != 4 {
		t.Errorf("unexpected motif %+v", m)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{"", "\n\n", "...\n. ."} {
		_, err := Parse("bad", text)
		if !errors.Is(err, errors.ErrCodeInvalidMotif) {
			t.Errorf("Parse(%q) error = %v, want %s", text, err, errors.ErrCodeInvalidMotif)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monster.txt")
	text := "                  # \n#    ##    ##    ###\n #  #  #  #  #  #   \n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Pattern.Equal(SeaMonster.Pattern) {
		t.Errorf("loaded pattern differs from SeaMonster")
	}

	if _, err := Load(filepath.Join(dir, "nope.txt")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
