package server

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/hull"
	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pipeline"
	"github.com/matzehuels/onion/pkg/store"
)

type peelRequest struct {
	Document onionio.Document `json:"document"`
	Options  pipeline.Options `json:"options"`
}

type peelResponse struct {
	RunID     string             `json:"run_id"`
	DocHash   string             `json:"doc_hash"`
	Layers    []onionio.Layer    `json:"layers"`
	Artifacts map[string]string  `json:"artifacts"`
	Cache     pipeline.CacheInfo `json:"cache"`
	PeelMS    float64            `json:"peel_ms"`
	RenderMS  float64            `json:"render_ms"`
}

type hullRequest struct {
	Points []onionio.XY `json:"points"`
}

type hullResponse struct {
	Hull []onionio.Segment `json:"hull"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePeel(w http.ResponseWriter, r *http.Request) {
	var req peelRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Document.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.peel(w, r, req.Document, req.Options)
}

func (s *Server) peel(w http.ResponseWriter, r *http.Request, doc onionio.Document, opts pipeline.Options) {
	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, peelResponse{
		RunID:     res.RunID,
		DocHash:   res.DocHash,
		Layers:    res.Layers.Layers,
		Artifacts: encodeArtifacts(res.Artifacts),
		Cache:     res.CacheInfo,
		PeelMS:    ms(res.Stats.PeelTime),
		RenderMS:  ms(res.Stats.RenderTime),
	})
}

func encodeArtifacts(artifacts map[string][]byte) map[string]string {
	out := make(map[string]string, len(artifacts))
	for format, data := range artifacts {
		switch format {
		case pipeline.FormatPNG, pipeline.FormatPDF:
			out[format] = base64.StdEncoding.EncodeToString(data)
		default:
			out[format] = string(data)
		}
	}
	return out
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

func (s *Server) handleHull(w http.ResponseWriter, r *http.Request) {
	var req hullRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	points := make([]r2.Vec, len(req.Points))
	for i, p := range req.Points {
		points[i] = r2.Vec{X: p.X, Y: p.Y}
	}
	segs := hull.Of(points)
	resp := hullResponse{Hull: make([]onionio.Segment, len(segs))}
	for i, seg := range segs {
		resp.Hull[i] = onionio.Segment{
			From: onionio.XY{X: seg.From.X, Y: seg.From.Y},
			To:   onionio.XY{X: seg.To.X, Y: seg.To.Y},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePointSet(w http.ResponseWriter, r *http.Request) {
	var doc onionio.Document
	if err := decode(w, r, &doc, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	p := store.New(r.URL.Query().Get("name"), doc, pipeline.DocumentHash(doc))
	if err := s.store.Put(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/pointsets/"+p.ID)
	writeJSON(w, http.StatusCreated, p.Summary())
}

func (s *Server) handleListPointSets(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string][]store.Summary{"pointsets": list})
}

func (s *Server) handleGetPointSet(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePointSet(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePeelPointSet(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var opts pipeline.Options
	if err := decode(w, r, &opts, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.peel(w, r, p.Document, opts)
}
