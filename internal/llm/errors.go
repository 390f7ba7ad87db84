package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxErrorBody caps the response excerpt quoted in an error.
const maxErrorBody = 300

// Sentinel errors for backend failures. Providers classify HTTP failures into
// these at the adapter boundary; callers check with errors.Is.
var (
	// ErrEmptyResponse indicates the backend answered without any text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrRateLimit indicates the backend rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the account quota or billing limit was hit.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrAuthFailed indicates the API key was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrUpstream covers any other non-success answer from the backend.
	ErrUpstream = errors.New("upstream error")
)

// classifyStatus maps an HTTP status code and body excerpt to a sentinel.
func classifyStatus(provider string, status int, body string) error {
	msg := strings.TrimSpace(body)
	if len(msg) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	var sentinel error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = ErrAuthFailed
	case status == http.StatusTooManyRequests && isQuotaMessage(msg):
		sentinel = ErrQuotaExceeded
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimit
	case status == http.StatusPaymentRequired:
		sentinel = ErrQuotaExceeded
	default:
		sentinel = ErrUpstream
	}
	return fmt.Errorf("%s returned status %d: %s: %w", provider, status, msg, sentinel)
}

func isQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "quota") || strings.Contains(lower, "billing") ||
		strings.Contains(lower, "resource_exhausted") || strings.Contains(lower, "insufficient")
}

// requireText trims the content and reports ErrEmptyResponse when nothing is left.
func requireText(provider, content string) (string, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return "", fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
	}
	return text, nil
}
