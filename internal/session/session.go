// Package session keeps the current script and its generation history.
package session

import (
	"time"

	"github.com/shaheeralics/scriptwriter/internal/script"
)

// DefaultHistoryLimit caps history when the caller passes no limit.
const DefaultHistoryLimit = 20

// Entry is one saved generation.
type Entry struct {
	Seq       int       `json:"seq"`
	Topic     string    `json:"topic"`
	Backend   string    `json:"backend"`
	Script    string    `json:"script"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the state of one writer: the script being worked on and the
// scripts generated before it. A Session is not safe for concurrent use; the
// Manager serializes access for the HTTP server.
type Session struct {
	ID        string
	Topic     string
	CreatedAt time.Time
	UpdatedAt time.Time

	current string
	history []Entry
	nextSeq int
	limit   int
}

// New creates an empty session. A limit of 0 keeps every history entry.
func New(id string, limit int) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, CreatedAt: now, UpdatedAt: now, limit: limit, nextSeq: 1}
}

// Current returns the current script.
func (s *Session) Current() string {
	return s.current
}

// SetCurrent replaces the current script.
func (s *Session) SetCurrent(text string) {
	s.current = text
	s.touch()
}

// SetTopic records the topic the current script is about.
func (s *Session) SetTopic(topic string) {
	s.Topic = topic
	s.touch()
}

// AppendHistory copies the current script into history. It is called once
// per successful generation; an empty current script is not recorded.
func (s *Session) AppendHistory(topic, backend string) (Entry, bool) {
	if s.current == "" {
		return Entry{}, false
	}
	e := Entry{
		Seq:       s.nextSeq,
		Topic:     topic,
		Backend:   backend,
		Script:    s.current,
		CreatedAt: time.Now().UTC(),
	}
	s.nextSeq++
	s.history = append(s.history, e)
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = append([]Entry(nil), s.history[len(s.history)-s.limit:]...)
	}
	s.touch()
	return e, true
}

// History returns a copy of the history, oldest first.
func (s *Session) History() []Entry {
	return append([]Entry(nil), s.history...)
}

// Paragraphs returns the current script split into paragraphs.
func (s *Session) Paragraphs() []string {
	return script.Paragraphs(s.current)
}

// ReplaceParagraph edits paragraph i of the current script. An empty
// replacement removes the paragraph. History is not touched.
func (s *Session) ReplaceParagraph(i int, text string) error {
	updated, err := script.ReplaceParagraph(s.current, i, text)
	if err != nil {
		return err
	}
	s.current = updated
	s.touch()
	return nil
}

// Reset clears the current script and topic. History is kept.
func (s *Session) Reset() {
	s.current = ""
	s.Topic = ""
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// View is a read-only snapshot of a session.
type View struct {
	ID           string       `json:"id"`
	Topic        string       `json:"topic"`
	Script       string       `json:"script"`
	Paragraphs   []string     `json:"paragraphs"`
	Stats        script.Stats `json:"stats"`
	HistoryCount int          `json:"history_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Snapshot returns a View of the session.
func (s *Session) Snapshot() View {
	paras := s.Paragraphs()
	if paras == nil {
		paras = []string{}
	}
	return View{
		ID:           s.ID,
		Topic:        s.Topic,
		Script:       s.current,
		Paragraphs:   paras,
		Stats:        script.Analyze(s.current),
		HistoryCount: len(s.history),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
