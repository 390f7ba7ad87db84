package api

import (
	"github.com/shaheeralics/scriptwriter/internal/generate"
	"github.com/shaheeralics/scriptwriter/internal/prompt"
	"github.com/shaheeralics/scriptwriter/internal/session"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status       string   `json:"status"`
	Timestamp    float64  `json:"timestamp"`
	Version      string   `json:"version"`
	Backends     []string `json:"backends"`
	AIConfigured bool     `json:"ai_configured"`
}

// ScriptRequest is the body of POST /generate-script.
type ScriptRequest struct {
	Topic          string `json:"topic"`
	Style          string `json:"style"`
	Duration       string `json:"duration"`
	TargetAudience string `json:"target_audience"`
	Language       string `json:"language"`
}

func (r ScriptRequest) brief() prompt.Brief {
	return prompt.Brief{
		Topic:    r.Topic,
		Style:    r.Style,
		Duration: r.Duration,
		Audience: r.TargetAudience,
		Language: r.Language,
	}
}

// ScriptResponse is returned by POST /generate-script.
type ScriptResponse struct {
	Script            string   `json:"script"`
	WordCount         int      `json:"word_count"`
	EstimatedDuration string   `json:"estimated_duration"`
	Sections          []string `json:"sections"`
}

// SessionGenerateResponse is returned by POST /api/sessions/{id}/generate.
type SessionGenerateResponse struct {
	Session  session.View       `json:"session"`
	Backend  string             `json:"backend"`
	Tier     int                `json:"tier"`
	Attempts []generate.Attempt `json:"attempts,omitempty"`
}

type scriptBody struct {
	Script string `json:"script"`
}

type paragraphBody struct {
	Text string `json:"text"`
}

type historyResponse struct {
	Entries []session.Entry `json:"entries"`
}
