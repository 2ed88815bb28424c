// Package pipeline runs the full solve: parse → assemble → stitch → scan.
//
// The CLI and the HTTP API both go through a [Runner], so caching and
// verification behave the same everywhere.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: text})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Checksum, result.Roughness)
//
// Stages can also be run on their own:
//
//	tiles, err := runner.Parse(ctx, opts)
//	placement, err := runner.Assemble(ctx, tiles, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/motif"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// MaxParallel bounds the number of concurrent seed branches.
const MaxParallel = 64

// Options configures one pipeline run. It is JSON-serializable so the API
// can accept it directly.
type Options struct {
	// Input is the tile text.
	Input string `json:"input"`

	// Source names the input in logs, e.g. a file path.
	Source string `json:"source,omitempty"`

	// Motif is the motif text. Empty means the sea monster.
	Motif string `json:"motif,omitempty"`

	// MotifName labels a custom motif.
	MotifName string `json:"motif_name,omitempty"`

	// Parallel is the number of seed branches searched concurrently.
	Parallel int `json:"parallel,omitempty"`

	// Refresh skips cache reads but still writes the fresh result.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	motif     motif.Motif
	validated bool
}

// ValidateAndSetDefaults checks the options and resolves the motif. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is empty")
	}
	if o.Parallel < 0 || o.Parallel > MaxParallel {
		return errors.New(errors.ErrCodeInvalidInput, "parallel must be between 0 and %d, got %d", MaxParallel, o.Parallel)
	}
	if o.Source == "" {
		o.Source = "input"
	}
	if o.Motif == "" {
		o.motif = motif.SeaMonster
	} else {
		name := o.MotifName
		if name == "" {
			name = "custom"
		}
		m, err := motif.Parse(name, o.Motif)
		if err != nil {
			return err
		}
		o.motif = m
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResolvedMotif returns the motif selected by the options. It is only
// meaningful after ValidateAndSetDefaults.
func (o *Options) ResolvedMotif() motif.Motif { return o.motif }

// PlacementKeyOpts returns cache key options for a tile set.
func (o *Options) PlacementKeyOpts(tiles int) cache.PlacementKeyOpts {
	return cache.PlacementKeyOpts{TileCount: tiles}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tiles     []tile.Tile
	InputHash string

	Placement *assemble.Placement
	Image     grid.Bitmap
	Checksum  uint64

	Scan        motif.ScanResult
	Orientation grid.Orientation
	Matches     int
	Roughness   int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline timings and sizes.
type Stats struct {
	TileCount    int
	Width        int
	Search       assemble.Stats
	ParseTime    time.Duration
	AssembleTime time.Duration
	StitchTime   time.Duration
	ScanTime     time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	PlacementHit bool
}
