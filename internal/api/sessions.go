package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/render"
	"github.com/shaheeralics/scriptwriter/internal/session"
)

func (s *Service) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.sessions.Create())
}

func (s *Service) handleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionGenerate calls the backends without holding the session lock
// and stores the result afterwards.
func (s *Service) handleSessionGenerate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ScriptRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := prompt.ValidateTopic(req.Topic, s.maxTopic); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.sessions.Get(id); err != nil {
		s.sessionError(w, err)
		return
	}

	res, err := s.generate(r.Context(), req.brief())
	if err != nil {
		s.logger.Printf("api: session %s: generating script for %q: %v", id, req.Topic, err)
		writeError(w, http.StatusInternalServerError, generateFailed)
		return
	}

	var view session.View
	err = s.sessions.With(id, func(sess *session.Session) error {
		sess.SetCurrent(res.Text)
		sess.SetTopic(req.Topic)
		sess.AppendHistory(req.Topic, res.Backend)
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionGenerateResponse{
		Session:  view,
		Backend:  res.Backend,
		Tier:     res.Tier,
		Attempts: res.Attempts,
	})
}

func (s *Service) handleSetScript(w http.ResponseWriter, r *http.Request) {
	var body scriptBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.update(w, chi.URLParam(r, "id"), func(sess *session.Session) error {
		sess.SetCurrent(body.Script)
		return nil
	})
}

func (s *Service) handleEditParagraph(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "paragraph index must be an integer")
		return
	}
	var body paragraphBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.update(w, chi.URLParam(r, "id"), func(sess *session.Session) error {
		return sess.ReplaceParagraph(index, body.Text)
	})
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	s.update(w, chi.URLParam(r, "id"), func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	var entries []session.Entry
	err := s.sessions.With(chi.URLParam(r, "id"), func(sess *session.Session) error {
		entries = sess.History()
		return nil
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if entries == nil {
		entries = []session.Entry{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	v, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	page, err := render.Preview(v.Script, v.Topic)
	if err != nil {
		s.logger.Printf("api: session %s: preview: %v", v.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Service) handleExportText(w http.ResponseWriter, r *http.Request) {
	v, ok := s.exportable(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	attachment(w, "text/plain; charset=utf-8", render.Filename(v.Topic, "txt"))
	w.Write(render.Text(v.Script))
}

func (s *Service) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	v, ok := s.exportable(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	res, err := s.exporter.PDF(v.Script, v.Topic)
	if err != nil {
		s.logger.Printf("api: session %s: pdf export: %v", v.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to export PDF")
		return
	}
	if res.Degraded {
		w.Header().Set("X-Render-Degraded", "true")
	}
	attachment(w, "application/pdf", render.Filename(v.Topic, "pdf"))
	w.Write(res.Data)
}

// update applies fn under the session lock and writes the new snapshot.
func (s *Service) update(w http.ResponseWriter, id string, fn func(*session.Session) error) {
	var view session.View
	err := s.sessions.With(id, func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// exportable returns the session snapshot, or writes an error when there is
// nothing to export.
func (s *Service) exportable(w http.ResponseWriter, id string) (session.View, bool) {
	v, err := s.sessions.Get(id)
	if err != nil {
		s.sessionError(w, err)
		return v, false
	}
	if strings.TrimSpace(v.Script) == "" {
		writeError(w, http.StatusConflict, "session has no script to export")
		return v, false
	}
	return v, true
}

func (s *Service) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
