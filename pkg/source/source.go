// Package source reads and writes the plain-text tile format:
//
//	Tile 2311:
//	..##.#..#.
//	##..#.....
//	...
//
// Tiles are separated by blank lines. Each block starts with a "Tile <id>:"
// header followed by E rows of E pixels, '#' active and '.' inactive. All
// tiles in one input share the same E.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// ReadFile parses the tiles stored at path.
func ReadFile(path string) ([]tile.Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "tile file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ParseTiles(f)
}

// ParseString parses tiles from an in-memory string.
func ParseString(s string) ([]tile.Tile, error) {
	return ParseTiles(strings.NewReader(s))
}

// ParseTiles reads every tile block from r.
func ParseTiles(r io.Reader) ([]tile.Tile, error) {
	var (
		tiles  []tile.Tile
		block  []string
		start  int
		seen   = make(map[uint64]bool)
		lineNo int
	)

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		t, err := parseBlock(block, start)
		block = block[:0]
		if err != nil {
			return err
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "line %d: duplicate tile id %d", start, t.ID)
		}
		if len(tiles) > 0 && tiles[0].Size != t.Size {
			return errors.New(errors.ErrCodeInvalidTile,
				"line %d: tile %d has edge %d, want %d", start, t.ID, t.Size, tiles[0].Size)
		}
		seen[t.ID] = true
		tiles = append(tiles, t)
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			start = lineNo
		}
		block = append(block, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read tiles")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tiles found")
	}
	return tiles, nil
}

func parseBlock(lines []string, start int) (tile.Tile, error) {
	id, err := parseHeader(lines[0])
	if err != nil {
		return tile.Tile{}, errors.Wrap(errors.ErrCodeInvalidTile, err, "line %d", start)
	}
	rows := lines[1:]
	for i, row := range rows {
		if strings.Trim(row, "#.") != "" {
			return tile.Tile{}, errors.New(errors.ErrCodeInvalidTile,
				"line %d: tile %d has unexpected characters in %q", start+1+i, id, row)
		}
		if len(row) != len(rows) {
			return tile.Tile{}, errors.New(errors.ErrCodeInvalidTile,
				"line %d: tile %d row has %d pixels, want %d", start+1+i, id, len(row), len(rows))
		}
	}
	px, err := grid.FromRows(rows)
	if err != nil {
		return tile.Tile{}, errors.Wrap(errors.ErrCodeInvalidTile, err, "tile %d", id)
	}
	return tile.New(id, px)
}

func parseHeader(line string) (uint64, error) {
	rest, ok := strings.CutPrefix(line, "Tile ")
	if !ok {
		return 0, fmt.Errorf("expected \"Tile <id>:\" header, got %q", line)
	}
	rest, ok = strings.CutSuffix(rest, ":")
	if !ok {
		return 0, fmt.Errorf("header %q is missing the trailing colon", line)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse tile id %q", rest)
	}
	return id, nil
}

// FormatTiles writes tiles in the text format accepted by ParseTiles.
func FormatTiles(w io.Writer, tiles []tile.Tile) error {
	var buf bytes.Buffer
	for i, t := range tiles {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "Tile %d:\n", t.ID)
		buf.WriteString(t.Pixels().String())
	}
	_, err := w.Write(buf.Bytes())
	return err
}
