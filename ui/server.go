// Package ui exposes the analysis pipeline over HTTP: JSON endpoints for
// automation plus an HTML report view for humans.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tranquil888/ab-testing-app/app"
	"github.com/Tranquil888/ab-testing-app/internal/logging"
	"github.com/Tranquil888/ab-testing-app/ports"
)

// Server is the HTTP front end of the analysis service
type Server struct {
	router  *chi.Mux
	service *app.AnalysisService
	reports ports.ReportRepository // nil when persistence is not configured
	reader  ports.TableReader
	log     *logging.Logger
}

func NewServer(service *app.AnalysisService, reports ports.ReportRepository, reader ports.TableReader, log *logging.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		reports: reports,
		reader:  reader,
		log:     log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyzeCounts)
		r.Post("/analyze/upload", s.handleAnalyzeUpload)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	s.router.Get("/reports/{id}", s.handleReportHTML)
}

// Router returns the configured handler for mounting or serving
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given port
func (s *Server) ListenAndServe(port string) error {
	s.log.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
