package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/pipeline"
	"github.com/matzehuels/ontomat/pkg/source"
	"github.com/matzehuels/ontomat/pkg/store"
)

// createRequest is the POST /hierarchies body.
type createRequest struct {
	Label     string          `json:"label"`
	Snapshot  source.Snapshot `json:"snapshot"`
	Mode      string          `json:"mode,omitempty"`
	Reflexive bool            `json:"reflexive,omitempty"`
	Scope     string          `json:"scope,omitempty"`
}

// summary is the metadata view of a stored hierarchy.
type summary struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	ClassCount int              `json:"class_count"`
	EdgeCount  int              `json:"edge_count"`
	Config     hierarchy.Config `json:"config"`
	CreatedAt  time.Time        `json:"created_at"`
}

func summarize(rec store.Record, h *hierarchy.Hierarchy) summary {
	return summary{
		ID:         rec.ID,
		Label:      rec.Label,
		ClassCount: h.ClassCount(),
		EdgeCount:  h.EdgeCount(),
		Config:     rec.Config,
		CreatedAt:  rec.CreatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	h, err := s.runner.Construct(r.Context(), req.Snapshot, pipeline.Options{
		Mode:      req.Mode,
		Reflexive: req.Reflexive,
		Scope:     req.Scope,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := store.NewRecord(req.Label, h)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("created hierarchy",
		"id", rec.ID,
		"label", rec.Label,
		"classes", h.ClassCount(),
		"mode", h.Config().Transitivity)

	writeJSON(w, http.StatusCreated, summarize(rec, h))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]summary, 0, len(recs))
	for _, rec := range recs {
		h, err := rec.Hierarchy()
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, summarize(rec, h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, h, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(rec, h))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// matrixResponse is the result matrix as names plus the true cells.
type matrixResponse struct {
	Names []string `json:"names"`
	Size  int      `json:"size"`
	Cells [][2]int `json:"cells"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	_, h, ok := s.load(w, r)
	if !ok {
		return
	}

	m, names := h.Results()
	writeJSON(w, http.StatusOK, matrixResponse{
		Names: names,
		Size:  m.Size(),
		Cells: m.Cells(),
	})
}

func (s *Server) handleLongestPath(w http.ResponseWriter, r *http.Request) {
	_, h, ok := s.load(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	sources := q["source"]
	target := q.Get("target")
	if target == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "target query parameter is required"))
		return
	}

	budget := s.cfg.Budget
	if v := q.Get("budget"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid budget: %q", v))
			return
		}
		budget = b
	}

	path, err := h.LongestPath(r.Context(), sources, target, budget)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// cyclesResponse reports the enumerated cycles and whether the limit cut
// the enumeration short.
type cyclesResponse struct {
	Cycles    [][]string `json:"cycles"`
	Truncated bool       `json:"truncated"`
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	_, h, ok := s.load(w, r)
	if !ok {
		return
	}

	limit := s.cfg.CycleLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = l
	}

	cycles, err := h.CollectCycles(limit)
	truncated := false
	if err != nil {
		if !errors.Is(err, errors.ErrCodeResourceExhausted) {
			writeError(w, err)
			return
		}
		truncated = true
	}
	if cycles == nil {
		cycles = [][]string{}
	}
	writeJSON(w, http.StatusOK, cyclesResponse{Cycles: cycles, Truncated: truncated})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	_, h, ok := s.load(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}

	artifacts, err := s.runner.Render(r.Context(), h, pipeline.Options{
		Formats:    []string{format},
		ShortNames: q.Get("short_names") == "true",
		SelfLoops:  q.Get("self_loops") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// load fetches and rehydrates the hierarchy named by the URL. On failure it
// writes the error response and returns ok=false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (store.Record, *hierarchy.Hierarchy, bool) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return store.Record{}, nil, false
	}
	h, err := rec.Hierarchy()
	if err != nil {
		writeError(w, err)
		return store.Record{}, nil, false
	}
	return rec, h, true
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.ErrCodeInternal)

	switch {
	case stderrors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		code = string(errors.ErrCodeNotFound)
	case errors.IsNotFound(err):
		status = http.StatusNotFound
		code = string(errors.GetCode(err))
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidMode),
		errors.Is(err, errors.ErrCodeInvalidScope),
		errors.Is(err, errors.ErrCodeSourceLoad):
		status = http.StatusBadRequest
		code = string(errors.GetCode(err))
	case errors.Is(err, errors.ErrCodeResourceExhausted):
		status = http.StatusUnprocessableEntity
		code = string(errors.ErrCodeResourceExhausted)
	}

	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: errors.UserMessage(err),
	})
}
