package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dungeonforge/pkg/buildinfo"
	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/level"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// levelSummary is one row of GET /api/levels.
type levelSummary struct {
	Name      string   `json:"name"`
	Templates int      `json:"templates"`
	Graphs    []string `json:"graphs"`
	Valid     bool     `json:"valid"`
}

// levelDetail is the body of GET /api/levels/{name}.
type levelDetail struct {
	levelSummary
	Hash   string        `json:"hash"`
	Issues []level.Issue `json:"issues"`
}

// generateResponse wraps a generated manifest with run metadata.
type generateResponse struct {
	Cached   bool            `json:"cached"`
	Duration string          `json:"duration"`
	Layout   json.RawMessage `json:"layout"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) listLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelSummary, 0, len(s.levels))
	for _, name := range s.Names() {
		out = append(out, summarize(s.levels[name]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getLevel(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	issues := e.issues
	if issues == nil {
		issues = []level.Issue{}
	}
	respondJSON(w, http.StatusOK, levelDetail{levelSummary: summarize(e), Hash: e.hash, Issues: issues})
}

func (s *Server) graphSVG(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	graph := chi.URLParam(r, "graph")
	if err := derrors.ValidateID(graph); err != nil {
		respondError(w, http.StatusBadRequest, derrors.UserMessage(err))
		return
	}
	svg, cached, err := s.runner.GraphSVGWithCacheInfo(r.Context(), e.level, e.hash, graph)
	if err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", cacheHeader(cached))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// generate builds a dungeon. Query parameters: seed (default random), graph
// (default any), format (json or txt, default json).
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		LevelData: e.data,
		Graph:     q.Get("graph"),
		Logger:    s.logger,
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || seed == 0 {
			respondError(w, http.StatusBadRequest, "seed must be a positive integer")
			return
		}
		opts.Seed = seed
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondErr(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.LayoutHit))
	w.Header().Set("X-Seed", strconv.FormatUint(res.Layout.Seed, 10))
	if format == pipeline.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
		return
	}
	respondJSON(w, http.StatusOK, generateResponse{
		Cached:   res.CacheInfo.LayoutHit,
		Duration: res.Stats.GenerateTime.String(),
		Layout:   json.RawMessage(res.Artifacts[format]),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	name := chi.URLParam(r, "name")
	if err := derrors.ValidateID(name); err != nil {
		respondError(w, http.StatusBadRequest, derrors.UserMessage(err))
		return nil, false
	}
	e, ok := s.levels[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown level "+name)
	}
	return e, ok
}

func summarize(e *entry) levelSummary {
	return levelSummary{
		Name:      e.level.Name,
		Templates: len(e.level.Templates),
		Graphs:    e.level.GraphNames(),
		Valid:     !level.HasErrors(e.issues),
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps a pipeline error to a status and writes it with its code.
func respondErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := derrors.GetCode(err)
	var exhausted *derrors.ExhaustedError
	switch {
	case code == derrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case code == derrors.ErrCodeExhausted, errors.As(err, &exhausted):
		status = http.StatusUnprocessableEntity
		code = derrors.ErrCodeExhausted
	case code == derrors.ErrCodeInvalidGraph, code == derrors.ErrCodeInvalidLevel,
		code == derrors.ErrCodeInvalidConfig, code == derrors.ErrCodeNoGraphs:
		status = http.StatusBadRequest
	}
	if code == "" {
		code = derrors.ErrCodeInternal
	}
	respondJSON(w, status, map[string]string{
		"error": derrors.UserMessage(err),
		"code":  string(code),
	})
}
