// Package api implements the HTTP handlers of the script writer service.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/render"
	"github.com/shaheeralics/scriptwriter/internal/session"
)

// Deps holds what the handlers need.
type Deps struct {
	Generator      *generate.Generator
	Sessions       *session.Manager
	Exporter       *render.Exporter
	MaxTopicLength int
	Version        string
	Logger         *log.Logger
}

// Service serves the script writer API.
type Service struct {
	gen      *generate.Generator
	sessions *session.Manager
	exporter *render.Exporter
	maxTopic int
	version  string
	logger   *log.Logger
}

// New creates a Service. Missing dependencies get working defaults.
func New(d Deps) *Service {
	s := &Service{
		gen:      d.Generator,
		sessions: d.Sessions,
		exporter: d.Exporter,
		maxTopic: d.MaxTopicLength,
		version:  d.Version,
		logger:   d.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.gen == nil {
		s.gen = generate.New(nil, nil, generate.Options{Logger: s.logger})
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(session.DefaultHistoryLimit)
	}
	if s.exporter == nil {
		s.exporter = render.NewExporter(render.PDFOptions{Logger: s.logger})
	}
	if s.maxTopic <= 0 {
		s.maxTopic = prompt.DefaultMaxTopicLength
	}
	if s.version == "" {
		s.version = "dev"
	}
	return s
}

// RegisterRoutes mounts the service and session routes.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/generate-script", s.handleGenerateScript)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/generate", s.handleSessionGenerate)
			r.Put("/script", s.handleSetScript)
			r.Put("/paragraphs/{index}", s.handleEditParagraph)
			r.Post("/reset", s.handleReset)
			r.Get("/history", s.handleHistory)
			r.Get("/preview", s.handlePreview)
			r.Get("/export.txt", s.handleExportText)
			r.Get("/export.pdf", s.handleExportPDF)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
