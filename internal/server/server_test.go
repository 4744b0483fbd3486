package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	onionerrors "github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/observability"
	"github.com/matzehuels/onion/pkg/pipeline"
	"github.com/matzehuels/onion/pkg/store"
)

const triangle = `{"width":20,"height":20,"range":20,"nodes":[
	{"x":0,"y":0,"id":1},{"x":10,"y":0,"id":2},{"x":5,"y":8,"id":3},{"x":5,"y":3,"id":4}]}`

func newTestServer(t *testing.T, gatherer prometheus.Gatherer) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := New(Config{
		Runner:   pipeline.NewRunner(nil, nil, logger),
		Store:    store.NewMemoryStore(),
		Logger:   logger,
		Gatherer: gatherer,
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte(`"ok"`)) {
		t.Errorf("body = %s", body)
	}
}

func TestPeel(t *testing.T) {
	ts := newTestServer(t, nil)
	body := `{"document":` + triangle + `,"options":{"diameters":[20],"formats":["svg","json"]}}`
	resp, data := do(t, http.MethodPost, ts.URL+"/v1/peel", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}

	var got peelResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID == "" || got.DocHash == "" {
		t.Errorf("run_id = %q, doc_hash = %q, want both set", got.RunID, got.DocHash)
	}
	if len(got.Layers) != 2 || !got.Layers[0].Closed {
		t.Fatalf("layers = %+v, want closed ring then no further layer", got.Layers)
	}
	if !strings.HasPrefix(got.Artifacts["svg"], "<svg") {
		t.Errorf("svg artifact = %.40s", got.Artifacts["svg"])
	}
	if !strings.Contains(got.Artifacts["json"], `"on_ring"`) {
		t.Errorf("json artifact = %.80s", got.Artifacts["json"])
	}
}

func TestPeelErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
		code int
		want onionerrors.Code
	}{
		{"Malformed", `{"document":`, http.StatusBadRequest, onionerrors.ErrCodeInvalidFormat},
		{"UnknownField", `{"doc":{}}`, http.StatusBadRequest, onionerrors.ErrCodeInvalidFormat},
		{"BadDiameter", `{"document":` + triangle + `,"options":{"diameters":[0]}}`, http.StatusBadRequest, onionerrors.ErrCodeInvalidInput},
		{"BadFormat", `{"document":` + triangle + `,"options":{"formats":["gif"]}}`, http.StatusBadRequest, onionerrors.ErrCodeInvalidInput},
		{"DuplicateIDs", `{"document":{"nodes":[{"x":0,"y":0,"id":1},{"x":1,"y":0,"id":1}]}}`, http.StatusBadRequest, onionerrors.ErrCodeInvalidFormat},
		{"UnknownAnchor", `{"document":` + triangle + `,"options":{"diameters":[20],"anchor":9}}`, http.StatusNotFound, onionerrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, http.MethodPost, ts.URL+"/v1/peel", tt.body)
			if resp.StatusCode != tt.code {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.code, data)
			}
			var e errorBody
			if err := json.Unmarshal(data, &e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.want {
				t.Errorf("code = %s, want %s", e.Code, tt.want)
			}
		})
	}
}

func TestHull(t *testing.T) {
	ts := newTestServer(t, nil)
	body := `{"points":[{"x":0,"y":0},{"x":4,"y":0},{"x":4,"y":4},{"x":0,"y":4},{"x":2,"y":2}]}`
	resp, data := do(t, http.MethodPost, ts.URL+"/v1/hull", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}
	var got hullResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Hull) != 4 {
		t.Errorf("hull = %+v, want 4 segments", got.Hull)
	}
}

func TestPointSets(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, data := do(t, http.MethodPost, ts.URL+"/v1/pointsets?name=tri", triangle)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, data)
	}
	var created store.Summary
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Name != "tri" || created.NodeCount != 4 {
		t.Errorf("created = %+v", created)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/pointsets/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/pointsets", "")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(data, []byte(created.ID)) {
		t.Errorf("list status = %d, body = %s", resp.StatusCode, data)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/pointsets/"+created.ID, "")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(data, []byte(`"nodes"`)) {
		t.Errorf("get status = %d, body = %s", resp.StatusCode, data)
	}

	resp, data = do(t, http.MethodPost, ts.URL+"/v1/pointsets/"+created.ID+"/peel", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("peel with defaults status = %d, body = %s", resp.StatusCode, data)
	}
	resp, data = do(t, http.MethodPost, ts.URL+"/v1/pointsets/"+created.ID+"/peel", `{"diameters":[20],"max_layers":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("peel status = %d, body = %s", resp.StatusCode, data)
	}
	var peeled peelResponse
	if err := json.Unmarshal(data, &peeled); err != nil {
		t.Fatal(err)
	}
	if len(peeled.Layers) != 1 {
		t.Errorf("layers = %d, want 1", len(peeled.Layers))
	}

	resp, _ = do(t, http.MethodDelete, ts.URL+"/v1/pointsets/"+created.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodGet, ts.URL+"/v1/pointsets/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.Install(observability.NewPrometheus(reg))
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, reg)
	do(t, http.MethodGet, ts.URL+"/healthz", "")
	do(t, http.MethodGet, ts.URL+"/v1/pointsets/missing", "")

	resp, data := do(t, http.MethodGet, ts.URL+"/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		"onion_http_requests_total",
		`route="/healthz"`,
		`route="/v1/pointsets/{id}"`,
		`code="404"`,
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code onionerrors.Code
		want int
	}{
		{onionerrors.ErrCodeInvalidInput, 400},
		{onionerrors.ErrCodeInvalidFormat, 400},
		{onionerrors.ErrCodeNotFound, 404},
		{onionerrors.ErrCodeDegenerateGeometry, 422},
		{onionerrors.ErrCodeInvariantViolation, 500},
		{onionerrors.ErrCodeUnsupported, 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
