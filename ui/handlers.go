package ui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tranquil888/ab-testing-app/app"
	"github.com/Tranquil888/ab-testing-app/domain/core"
)

// analyzeCountsRequest is the JSON body for count-level analysis
type analyzeCountsRequest struct {
	Control struct {
		N           int `json:"n"`
		Conversions int `json:"conversions"`
	} `json:"control"`
	Treatment struct {
		N           int `json:"n"`
		Conversions int `json:"conversions"`
	} `json:"treatment"`
	app.RunConfig
}

func (s *Server) handleAnalyzeCounts(w http.ResponseWriter, r *http.Request) {
	var req analyzeCountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.service.AnalyzeCounts(r.Context(),
		req.Control.N, req.Control.Conversions,
		req.Treatment.N, req.Treatment.Conversions,
		req.RunConfig)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleAnalyzeUpload accepts a multipart "dataset" file (CSV or XLSX),
// runs the full pipeline, and returns the composed report. Test options
// come from form fields.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	tmp.Close()

	table, err := s.reader.Read(r.Context(), tmp.Name())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	cfg := app.RunConfig{}
	if raw := r.FormValue("iterations"); raw != "" {
		cfg.Iterations, _ = strconv.Atoi(raw)
	}
	if raw := r.FormValue("alpha"); raw != "" {
		cfg.Alpha, _ = strconv.ParseFloat(raw, 64)
	}
	if raw := r.FormValue("seed"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Seed = &seed
		}
	}

	report, err := s.service.Analyze(r.Context(), table, cfg)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		s.respondError(w, http.StatusNotFound, errors.New("report store not configured"))
		return
	}
	id := core.RunID(chi.URLParam(r, "id"))
	report, err := s.reports.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		s.respondJSON(w, http.StatusOK, []struct{}{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := s.reports.ListRecent(r.Context(), limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, reports)
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		http.NotFound(w, r)
		return
	}
	id := core.RunID(chi.URLParam(r, "id"))
	report, err := s.reports.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(RenderReportHTML(report))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

// respondDomainError maps pipeline failures onto HTTP statuses: structural
// and precondition problems are the client's data (422), cancellation is
// the client closing the request (400), anything else is a server fault.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsStructuralError(err), core.IsRecoverableTestError(err):
		s.respondError(w, http.StatusUnprocessableEntity, err)
	case core.IsCancelled(err):
		s.respondError(w, http.StatusBadRequest, err)
	default:
		s.respondError(w, http.StatusInternalServerError, err)
	}
}
