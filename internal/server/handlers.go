package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/motif"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/render"
	"github.com/matzehuels/mosaic/pkg/source"
	"github.com/matzehuels/mosaic/pkg/stitch"
	"github.com/matzehuels/mosaic/pkg/store"
)

// SolveResponse is returned by POST /v1/solve.
type SolveResponse struct {
	Run    *store.Run     `json:"run"`
	Stats  assemble.Stats `json:"stats"`
	Cached bool           `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSolve accepts either raw tile text or a JSON pipeline.Options body.
// With raw text, the motif and parallel settings come from the query.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts, err := decodeSolveOptions(r, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	run := store.NewRun(res, opts)
	if err := s.store.Save(r.Context(), run); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SolveResponse{
		Run:    run,
		Stats:  res.Stats.Search,
		Cached: res.CacheInfo.PlacementHit,
	})
}

func decodeSolveOptions(r *http.Request, body []byte) (pipeline.Options, error) {
	var opts pipeline.Options
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
	} else {
		q := r.URL.Query()
		opts.Input = string(body)
		opts.Source = q.Get("source")
		opts.Motif = q.Get("motif")
		opts.MotifName = q.Get("motif_name")
		if p := q.Get("parallel"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "parallel must be an integer")
			}
			opts.Parallel = n
		}
		opts.Refresh = q.Get("refresh") == "true"
	}
	if opts.Source == "" {
		opts.Source = "api"
	}
	return opts, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleImage redraws the stitched image of a stored run from its cell
// references. With ?highlight=true motif pixels are marked.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !render.IsImage(format) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", format))
		return
	}
	run, p, err := s.loadPlacement(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	img := stitch.Stitch(p)
	var mask grid.Bitmap
	if r.URL.Query().Get("highlight") == "true" {
		m := motif.SeaMonster
		if run.MotifText != "" {
			if m, err = motif.Parse(run.Motif, run.MotifText); err != nil {
				s.writeError(w, r, err)
				return
			}
		}
		mask = motif.Scan(img, m).Mask(img)
	}

	scale := 1
	if format != render.FormatText {
		scale = 4
	}
	if v := r.URL.Query().Get("scale"); v != "" {
		if scale, err = strconv.Atoi(v); err != nil || scale < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive integer"))
			return
		}
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, format, img, mask, scale); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != render.FormatSVG && format != render.FormatDOT {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format))
		return
	}
	_, p, err := s.loadPlacement(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := []byte(render.AdjacencyDOT(p))
	if format == render.FormatSVG {
		if out, err = render.RenderSVG(string(out)); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(out)
}

// loadPlacement fetches a run and rebuilds its verified placement.
func (s *Server) loadPlacement(r *http.Request) (*store.Run, *assemble.Placement, error) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, nil, err
	}
	tiles, err := source.ParseString(run.Input)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "stored input for run %s", run.ID)
	}
	p, err := assemble.FromRefs(tiles, run.Width, run.Cells)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "stored placement for run %s", run.ID)
	}
	return run, p, nil
}

var contentTypes = map[string]string{
	render.FormatPNG:  "image/png",
	render.FormatBMP:  "image/bmp",
	render.FormatTIFF: "image/tiff",
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatSVG:  "image/svg+xml",
	render.FormatDOT:  "text/vnd.graphviz",
}
