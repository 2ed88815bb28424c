package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/internal/fixture"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, nil), st).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func solve(t *testing.T, srv *httptest.Server) SolveResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/solve", "text/plain", strings.NewReader(fixture.ReferenceInput))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var out SolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestSolveAndFetch(t *testing.T) {
	srv := newTestServer(t)
	out := solve(t, srv)

	if out.Run.Checksum != fixture.ReferenceChecksum {
		t.Errorf("Checksum = %d, want %d", out.Run.Checksum, fixture.ReferenceChecksum)
	}
	if out.Run.Roughness != fixture.ReferenceRoughness {
		t.Errorf("Roughness = %d, want %d", out.Run.Roughness, fixture.ReferenceRoughness)
	}

	resp, body := get(t, srv.URL+"/v1/runs/"+out.Run.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET run: status %d", resp.StatusCode)
	}
	var run store.Run
	if err := json.Unmarshal(body, &run); err != nil {
		t.Fatal(err)
	}
	if run.ID != out.Run.ID || len(run.Cells) != 9 {
		t.Errorf("run = %+v", run)
	}

	resp, body = get(t, srv.URL+"/v1/runs")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), out.Run.ID) {
		t.Errorf("list: status %d, body %s", resp.StatusCode, body)
	}
}

func TestImage(t *testing.T) {
	srv := newTestServer(t)
	id := solve(t, srv).Run.ID

	resp, body := get(t, srv.URL+"/v1/runs/"+id+"/image.png?scale=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 48x48", b)
	}

	_, body = get(t, srv.URL+"/v1/runs/"+id+"/image.txt?highlight=true")
	if n := strings.Count(string(body), "O"); n != fixture.ReferenceMonsters*15 {
		t.Errorf("highlighted pixels = %d, want %d", n, fixture.ReferenceMonsters*15)
	}

	resp, body = get(t, srv.URL+"/v1/runs/"+id+"/graph.dot")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "graph G") {
		t.Errorf("graph.dot: status %d, body %s", resp.StatusCode, body)
	}
}

func TestSolveJSON(t *testing.T) {
	srv := newTestServer(t)
	reqBody, _ := json.Marshal(pipeline.Options{Input: fixture.ReferenceInput, Parallel: 2, Source: "json"})
	resp, err := http.Post(srv.URL+"/v1/solve", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out SolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Run.Source != "json" {
		t.Errorf("Source = %q", out.Run.Source)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	twoTiles := strings.Join(strings.Split(fixture.ReferenceInput, "\n\n")[:2], "\n\n")
	id := solve(t, srv).Run.ID

	tests := []struct {
		name   string
		method string
		path   string
		ctype  string
		body   string
		status int
		code   string
	}{
		{"empty body", "POST", "/v1/solve", "text/plain", "", 400, "INVALID_INPUT"},
		{"bad tile", "POST", "/v1/solve", "text/plain", "Tile 1:\n#", 400, "INVALID_TILE"},
		{"not square", "POST", "/v1/solve", "text/plain", twoTiles, 422, "SHAPE_MISMATCH"},
		{"bad parallel", "POST", "/v1/solve?parallel=x", "text/plain", fixture.ReferenceInput, 400, "INVALID_INPUT"},
		{"unknown json field", "POST", "/v1/solve", "application/json", `{"tiles":"x"}`, 400, "INVALID_INPUT"},
		{"bad id", "GET", "/v1/runs/nope", "", "", 400, "INVALID_INPUT"},
		{"missing run", "GET", "/v1/runs/" + uuid.NewString(), "", "", 404, "NOT_FOUND"},
		{"bad image format", "GET", "/v1/runs/" + id + "/image.jpg", "", "", 400, "INVALID_FORMAT"},
		{"bad graph format", "GET", "/v1/runs/" + id + "/graph.png", "", "", 400, "INVALID_FORMAT"},
		{"bad limit", "GET", "/v1/runs?limit=-1", "", "", 400, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body ErrorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}

type routeHooks struct {
	mu     sync.Mutex
	routes []string
}

func (h *routeHooks) OnRequest(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func TestObserveUsesRoutePattern(t *testing.T) {
	h := &routeHooks{}
	observability.SetServerHooks(h)
	defer observability.Reset()

	srv := newTestServer(t)
	get(t, srv.URL+"/v1/runs/"+uuid.NewString())

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.routes) != 1 || !strings.HasPrefix(h.routes[0], "GET /v1/runs/{id}") {
		t.Errorf("routes = %v", h.routes)
	}
}
