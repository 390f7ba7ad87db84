package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/script"
)

const generateFailed = "Internal server error while generating script"

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "YouTube Script Writer API is running!",
		Status:  "healthy",
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Timestamp:    float64(now.UnixNano()) / float64(time.Second),
		Version:      s.version,
		Backends:     s.gen.Backends(),
		AIConfigured: s.gen.Configured(),
	})
}

func (s *Service) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	var req ScriptRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := prompt.ValidateTopic(req.Topic, s.maxTopic); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Printf("api: generating script for topic %q", req.Topic)
	res, err := s.generate(r.Context(), req.brief())
	if err != nil {
		s.logger.Printf("api: generating script for %q: %v", req.Topic, err)
		writeError(w, http.StatusInternalServerError, generateFailed)
		return
	}

	stats := script.Analyze(res.Text)
	s.logger.Printf("api: script generated by %s, %d words", res.Backend, stats.WordCount)
	writeJSON(w, http.StatusOK, ScriptResponse{
		Script:            res.Text,
		WordCount:         stats.WordCount,
		EstimatedDuration: stats.EstimatedDuration,
		Sections:          stats.Sections,
	})
}

// generate runs the generator and turns a panic into an error.
func (s *Service) generate(ctx context.Context, brief prompt.Brief) (res *generate.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator panic: %v", rec)
		}
	}()
	res = s.gen.Generate(ctx, brief)
	if res == nil || res.Text == "" {
		return nil, errors.New("generator returned no script")
	}
	return res, nil
}
