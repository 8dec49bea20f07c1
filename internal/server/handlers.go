package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/leapstack-labs/querykit/pkg/format"
	"github.com/leapstack-labs/querykit/pkg/lint"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Request bodies
type (
	buildRequest struct {
		Input  string      `json:"input"`
		Config core.Config `json:"config"`
	}

	batchRequest struct {
		Items []json.RawMessage `json:"items"`
	}

	formatRequest struct {
		SQL               string        `json:"sql"`
		Database          core.Database `json:"database"`
		UppercaseKeywords *bool         `json:"uppercaseKeywords"`
		IndentSize        int           `json:"indentSize"`
		LineWidth         int           `json:"lineWidth"`
	}

	analyzeRequest struct {
		SQL string `json:"sql"`
	}
)

// Response bodies
type (
	errorResponse struct {
		Error string `json:"error"`
	}

	batchResponse struct {
		Results []engine.BatchResult `json:"results"`
	}

	formatResponse struct {
		SQL string `json:"sql"`
	}

	suggestionsResponse struct {
		Suggestions []lint.Suggestion `json:"suggestions"`
	}
)

// writeJSON writes data as JSON with proper headers.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBuild runs the engine. Fields missing from the request config keep
// the server defaults. Engine failures are reported with 422 and the
// ToolResult envelope.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	req := buildRequest{Config: s.defaults}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := s.engine.Process(req.Input, req.Config)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := make([]engine.BatchItem, len(req.Items))
	for i, raw := range req.Items {
		items[i].Config = s.defaults
		if err := json.Unmarshal(raw, &items[i]); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("item %d: %w", i, err))
			return
		}
	}

	results, err := s.engine.ProcessBatch(r.Context(), items)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	db := req.Database
	if db == "" {
		db = s.defaults.Database
	}
	d, err := dialect.Lookup(db)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	upper := s.defaults.UppercaseKeywords
	if req.UppercaseKeywords != nil {
		upper = *req.UppercaseKeywords
	}
	indent := req.IndentSize
	if indent == 0 {
		indent = s.defaults.IndentSize
	}

	writeJSON(w, http.StatusOK, formatResponse{SQL: format.SQL(req.SQL, format.Options{
		Dialect:           d,
		UppercaseKeywords: upper,
		IndentSize:        indent,
		LineWidth:         req.LineWidth,
	})})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Analyze(req.SQL))
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dialect.Describe())
}

// handleSuggestions lists the catalog, filtered by the optional {kind}.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "kind")
	if param == "" {
		writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: lint.Catalog()})
		return
	}

	kind, ok := core.ParseQueryType(param)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", core.ErrUnsupportedQueryType, param))
		return
	}
	suggestions := lint.Catalog(kind)
	if suggestions == nil {
		suggestions = []lint.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
