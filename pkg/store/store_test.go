package store

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/mosaic/internal/fixture"
	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

func sampleRun() *Run {
	return &Run{
		Source:      "tiles.txt",
		InputHash:   "abc",
		Motif:       "sea-monster",
		TileCount:   9,
		Width:       3,
		Checksum:    fixture.ReferenceChecksum,
		Orientation: grid.FlipRot90,
		Matches:     2,
		Roughness:   273,
		Cells:       []assemble.CellRef{{ID: 1951, Orientation: grid.Flip}},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	run := sampleRun()
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ValidateID(run.ID); err != nil {
		t.Errorf("Save assigned invalid id %q", run.ID)
	}
	if run.CreatedAt.IsZero() {
		t.Error("Save should set CreatedAt")
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Checksum != run.Checksum || got.Orientation != run.Orientation || len(got.Cells) != 1 {
		t.Errorf("Get = %+v, want %+v", got, run)
	}
	if got.Cells[0] != run.Cells[0] {
		t.Errorf("cell = %+v, want %+v", got.Cells[0], run.Cells[0])
	}

	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete: err = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, run.ID); err != nil {
		t.Errorf("deleting a missing run: %v", err)
	}
}

func TestFileStore_List(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := sampleRun()
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := s.Save(ctx, run); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(runs))
	}
	if runs[0].ID != ids[2] || runs[2].ID != ids[0] {
		t.Error("List should return newest first")
	}

	runs, _ = s.List(ctx, 2)
	if len(runs) != 2 {
		t.Errorf("List(2) returned %d runs", len(runs))
	}
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	for _, id := range []string{"", "../etc/passwd", "not-a-uuid"} {
		if _, err := s.Get(ctx, id); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q): err = %v, want INVALID_INPUT", id, err)
		}
	}
	run := sampleRun()
	run.ID = "../../escape"
	if err := s.Save(ctx, run); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save with bad id: err = %v", err)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NullStore{}
	run := sampleRun()
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Error("NullStore.Save should still assign an id")
	}
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get: err = %v, want NOT_FOUND", err)
	}
}

func TestRun_BSON(t *testing.T) {
	run := sampleRun()
	prepare(run)

	data, err := bson.Marshal(run)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["_id"] != run.ID {
		t.Errorf("_id = %v, want %s", doc["_id"], run.ID)
	}
	for _, key := range []string{"created_at", "input_hash", "tile_count", "checksum", "roughness", "cells"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
	if _, ok := doc["motif_text"]; ok {
		t.Error("empty motif_text should be omitted")
	}

	var back Run
	if err := bson.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Checksum != run.Checksum || back.Orientation != run.Orientation || back.Cells[0] != run.Cells[0] {
		t.Errorf("decoded run = %+v", back)
	}
}

func TestListOptions(t *testing.T) {
	if got := *listOptions(0).Limit; got != DefaultListLimit {
		t.Errorf("default limit = %d", got)
	}
	if got := *listOptions(5).Limit; got != 5 {
		t.Errorf("limit = %d, want 5", got)
	}
}

func TestNewMongoStore_Unreachable(t *testing.T) {
	ctx := context.Background()
	_, err := NewMongoStore(ctx, MongoOptions{
		URI:      "mongodb://127.0.0.1:1",
		Database: "mosaic_test",
		Timeout:  200 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}

func TestNewRun(t *testing.T) {
	opts := pipeline.Options{Input: fixture.ReferenceInput, Source: "ref"}
	res, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	run := NewRun(res, opts)
	if run.Checksum != fixture.ReferenceChecksum || run.Roughness != fixture.ReferenceRoughness {
		t.Errorf("run = %+v", run)
	}
	if len(run.Cells) != 9 || run.Width != 3 {
		t.Errorf("run has %d cells, width %d", len(run.Cells), run.Width)
	}
	if run.Source != "ref" || run.Motif != "sea-monster" {
		t.Errorf("run source/motif = %q/%q", run.Source, run.Motif)
	}
}
