// Package store persists solved runs.
//
// A [Run] records what was solved and the answer: the tile text, the
// placement as compact cell references, and the checksum and roughness.
// Three backends implement [Store]:
//
//   - [FileStore]: one JSON file per run (CLI default)
//   - [MongoStore]: a MongoDB collection (API server)
//   - [NullStore]: discards everything (store.backend = "none")
//
// Run ids are random UUIDs assigned on Save.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Run is one persisted solve.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Source    string `json:"source" bson:"source"`
	InputHash string `json:"input_hash" bson:"input_hash"`
	Input     string `json:"input,omitempty" bson:"input"`
	Motif     string `json:"motif" bson:"motif"`
	MotifText string `json:"motif_text,omitempty" bson:"motif_text,omitempty"`

	TileCount   int                `json:"tile_count" bson:"tile_count"`
	Width       int                `json:"width" bson:"width"`
	Checksum    uint64             `json:"checksum" bson:"checksum"`
	Orientation grid.Orientation   `json:"orientation" bson:"orientation"`
	Matches     int                `json:"matches" bson:"matches"`
	Roughness   int                `json:"roughness" bson:"roughness"`
	Cells       []assemble.CellRef `json:"cells" bson:"cells"`
}

// NewRun builds an unsaved run from a pipeline result and the options that
// produced it.
func NewRun(res *pipeline.Result, opts pipeline.Options) *Run {
	return &Run{
		Source:      opts.Source,
		InputHash:   res.InputHash,
		Input:       opts.Input,
		Motif:       res.Scan.Motif.Name,
		MotifText:   opts.Motif,
		TileCount:   res.Stats.TileCount,
		Width:       res.Placement.Width,
		Checksum:    res.Checksum,
		Orientation: res.Orientation,
		Matches:     res.Matches,
		Roughness:   res.Roughness,
		Cells:       res.Placement.Refs(),
	}
}

// Store persists runs.
type Store interface {
	// Save assigns an ID and CreatedAt when they are unset and writes run.
	Save(ctx context.Context, run *Run) error

	// Get returns the run with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. A limit of zero or less
	// means DefaultListLimit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare fills in the ID and timestamp of a run about to be saved.
func prepare(run *Run) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "run %s not found", id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
