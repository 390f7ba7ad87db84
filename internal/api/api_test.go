package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/llm"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/session"
)

type fakeProvider struct {
	name    string
	content string
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, Model: "fake"}, nil
}

func newTestRouter(t *testing.T, backends ...llm.Provider) (http.Handler, *session.Manager) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	gen := generate.New(prompt.NewBuilder("Write about {}.", nil), backends, generate.Options{Logger: logger})
	sessions := session.NewManager(session.DefaultHistoryLimit)
	svc := New(Deps{
		Generator: gen,
		Sessions:  sessions,
		Version:   "1.0.0",
		Logger:    logger,
	})
	r := chi.NewRouter()
	svc.RegisterRoutes(r)
	return r, sessions
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
}

func TestRoot(t *testing.T) {
	h, _ := newTestRouter(t)
	w := do(t, h, "GET", "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["status"] != "healthy" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestHealth(t *testing.T) {
	t.Run("no backends", func(t *testing.T) {
		h, _ := newTestRouter(t)
		w := do(t, h, "GET", "/health", nil)
		var body HealthResponse
		decodeBody(t, w, &body)
		if body.Status != "healthy" || body.Version != "1.0.0" {
			t.Errorf("unexpected body: %+v", body)
		}
		if body.AIConfigured {
			t.Error("expected ai_configured false")
		}
		if body.Timestamp <= 0 {
			t.Error("expected a timestamp")
		}
	})

	t.Run("with backends", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeProvider{name: "google"}, &fakeProvider{name: "openai"})
		w := do(t, h, "GET", "/health", nil)
		var body HealthResponse
		decodeBody(t, w, &body)
		if !body.AIConfigured {
			t.Error("expected ai_configured true")
		}
		if strings.Join(body.Backends, ",") != "google,openai" {
			t.Errorf("backends = %v", body.Backends)
		}
	})
}

func TestGenerateScriptValidation(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name   string
		body   any
		detail string
	}{
		{"empty topic", ScriptRequest{Topic: ""}, "Topic cannot be empty"},
		{"whitespace topic", ScriptRequest{Topic: "   "}, "Topic cannot be empty"},
		{"long topic", ScriptRequest{Topic: strings.Repeat("a", 201)}, "Topic too long (max 200 characters)"},
		{"malformed body", "{not json", "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/generate-script", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]string
			decodeBody(t, w, &body)
			if body["detail"] != tt.detail {
				t.Errorf("detail = %q, want %q", body["detail"], tt.detail)
			}
		})
	}
}

func TestGenerateScriptBoundaryLength(t *testing.T) {
	h, _ := newTestRouter(t)
	w := do(t, h, "POST", "/generate-script", ScriptRequest{Topic: strings.Repeat("a", 200)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a 200-character topic, got %d", w.Code)
	}
}

func TestGenerateScriptTemplateFallback(t *testing.T) {
	h, _ := newTestRouter(t)
	w := do(t, h, "POST", "/generate-script", ScriptRequest{Topic: "Solar Power", Style: "entertaining"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body ScriptResponse
	decodeBody(t, w, &body)
	if !strings.Contains(body.Script, "Solar Power") {
		t.Error("template script should mention the topic")
	}
	if body.WordCount == 0 || body.EstimatedDuration == "" {
		t.Errorf("missing stats: %+v", body)
	}
	if len(body.Sections) == 0 {
		t.Error("template script should have sections")
	}
}

func TestGenerateScriptUsesBackend(t *testing.T) {
	failing := &fakeProvider{name: "google", err: llm.ErrQuotaExceeded}
	working := &fakeProvider{name: "openai", content: "## Intro\n\nHello wireless world.\n"}
	h, _ := newTestRouter(t, failing, working)

	w := do(t, h, "POST", "/generate-script", ScriptRequest{Topic: "wireless"})
	var body ScriptResponse
	decodeBody(t, w, &body)
	if body.Script != "## Intro\n\nHello wireless world." {
		t.Errorf("script = %q", body.Script)
	}
	if len(body.Sections) != 1 || body.Sections[0] != "Intro" {
		t.Errorf("sections = %v", body.Sections)
	}
}

func TestGenerateScriptNilSectionsEncodeAsArray(t *testing.T) {
	h, _ := newTestRouter(t, &fakeProvider{name: "google", content: "Just words."})
	w := do(t, h, "POST", "/generate-script", ScriptRequest{Topic: "x"})
	if !strings.Contains(w.Body.String(), `"sections":[]`) {
		t.Errorf("expected empty sections array, got %s", w.Body.String())
	}
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, "POST", "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var v session.View
	decodeBody(t, w, &v)
	if v.ID == "" {
		t.Fatal("expected session id")
	}
	return v.ID
}

func TestSessionLifecycle(t *testing.T) {
	h, sessions := newTestRouter(t, &fakeProvider{name: "google", content: "First paragraph.\n\nSecond paragraph."})
	id := createSession(t, h)
	base := "/api/sessions/" + id

	w := do(t, h, "POST", base+"/generate", ScriptRequest{Topic: "Wireless Charging"})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var gen SessionGenerateResponse
	decodeBody(t, w, &gen)
	if gen.Backend != "google" || gen.Tier != 0 {
		t.Errorf("backend/tier = %s/%d", gen.Backend, gen.Tier)
	}
	if len(gen.Session.Paragraphs) != 2 || gen.Session.HistoryCount != 1 {
		t.Errorf("unexpected session: %+v", gen.Session)
	}

	w = do(t, h, "PUT", base+"/paragraphs/1", paragraphBody{Text: "Edited."})
	var v session.View
	decodeBody(t, w, &v)
	if v.Script != "First paragraph.\n\nEdited." {
		t.Errorf("script after edit = %q", v.Script)
	}

	w = do(t, h, "PUT", base+"/paragraphs/0", paragraphBody{Text: ""})
	decodeBody(t, w, &v)
	if v.Script != "Edited." {
		t.Errorf("script after removal = %q", v.Script)
	}

	w = do(t, h, "GET", base+"/history", nil)
	var hist historyResponse
	decodeBody(t, w, &hist)
	if len(hist.Entries) != 1 || hist.Entries[0].Script != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("history should hold the generated script unchanged: %+v", hist.Entries)
	}

	w = do(t, h, "POST", base+"/reset", nil)
	decodeBody(t, w, &v)
	if v.Script != "" || v.HistoryCount != 1 {
		t.Errorf("after reset: %+v", v)
	}

	w = do(t, h, "DELETE", base, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", sessions.Len())
	}
	if w := do(t, h, "GET", base, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown session", "GET", "/api/sessions/nope", nil, http.StatusNotFound},
		{"generate unknown session", "POST", "/api/sessions/nope/generate", ScriptRequest{Topic: "x"}, http.StatusNotFound},
		{"generate empty topic", "POST", base + "/generate", ScriptRequest{}, http.StatusBadRequest},
		{"bad paragraph index", "PUT", base + "/paragraphs/abc", paragraphBody{Text: "x"}, http.StatusBadRequest},
		{"paragraph out of range", "PUT", base + "/paragraphs/3", paragraphBody{Text: "x"}, http.StatusBadRequest},
		{"export empty text", "GET", base + "/export.txt", nil, http.StatusConflict},
		{"export empty pdf", "GET", base + "/export.pdf", nil, http.StatusConflict},
		{"delete unknown", "DELETE", "/api/sessions/nope", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestSessionExports(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	script := "# Wireless Charging\n\nCharging without **cables**."
	if w := do(t, h, "PUT", base+"/script", scriptBody{Script: script}); w.Code != http.StatusOK {
		t.Fatalf("set script: %d", w.Code)
	}

	w := do(t, h, "GET", base+"/preview", nil)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("preview content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<strong>cables</strong>") {
		t.Error("preview should render bold text")
	}

	w = do(t, h, "GET", base+"/export.txt", nil)
	if w.Body.String() != script {
		t.Errorf("text export = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="youtube_script.txt"` {
		t.Errorf("content disposition = %q", cd)
	}

	w = do(t, h, "GET", base+"/export.pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf export: %d %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF data")
	}
	if w.Header().Get("X-Render-Degraded") != "" {
		t.Error("plain ASCII script should not degrade")
	}
}

func TestSessionExportPDFDegrades(t *testing.T) {
	h, _ := newTestRouter(t, &fakeProvider{name: "google", content: "日本語のスクリプト 🎬"})
	id := createSession(t, h)
	base := "/api/sessions/" + id

	if w := do(t, h, "POST", base+"/generate", ScriptRequest{Topic: "Tokyo"}); w.Code != http.StatusOK {
		t.Fatalf("generate: %d", w.Code)
	}
	w := do(t, h, "GET", base+"/export.pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Render-Degraded") != "true" {
		t.Error("expected degraded header")
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="youtube-script-tokyo.pdf"` {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestSessionGenerateAllBackendsFail(t *testing.T) {
	h, _ := newTestRouter(t, &fakeProvider{name: "google", err: errors.New("down")})
	id := createSession(t, h)

	w := do(t, h, "POST", "/api/sessions/"+id+"/generate", ScriptRequest{Topic: "Kites"})
	var gen SessionGenerateResponse
	decodeBody(t, w, &gen)
	if gen.Backend != generate.TemplateBackend || gen.Tier != 1 {
		t.Errorf("backend/tier = %s/%d", gen.Backend, gen.Tier)
	}
	if len(gen.Attempts) != 1 || gen.Attempts[0].Backend != "google" {
		t.Errorf("attempts = %+v", gen.Attempts)
	}
	if !strings.Contains(gen.Session.Script, "Kites") {
		t.Error("template script should mention the topic")
	}
}
