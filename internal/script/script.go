// Package script holds the plain-text operations on a generated script:
// paragraph splitting, normalization, word counting, duration estimates and
// section extraction.
package script

import (
	"fmt"
	"strings"
	"unicode"
)

// WordsPerMinute is the speaking rate used for duration estimates.
const WordsPerMinute = 150

// Paragraphs splits text on blank lines, trims each paragraph and drops the
// empty ones. CRLF line endings are treated as LF.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	var cur []string
	flush := func() {
		p := strings.TrimSpace(strings.Join(cur, "\n"))
		if p != "" {
			out = append(out, p)
		}
		cur = cur[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

// Join is the inverse of Paragraphs.
func Join(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// Normalize re-joins the paragraphs of text with a single blank line between
// them. Normalize is idempotent.
func Normalize(text string) string {
	return Join(Paragraphs(text))
}

// ReplaceParagraph returns text with paragraph i replaced by replacement.
// An empty replacement removes the paragraph.
func ReplaceParagraph(text string, i int, replacement string) (string, error) {
	paras := Paragraphs(text)
	if i < 0 || i >= len(paras) {
		return "", fmt.Errorf("paragraph index %d out of range [0,%d)", i, len(paras))
	}
	replacement = strings.TrimSpace(replacement)
	if replacement == "" {
		paras = append(paras[:i], paras[i+1:]...)
	} else {
		paras[i] = replacement
	}
	return Normalize(Join(paras)), nil
}

// WordCount counts whitespace-separated tokens that contain at least one
// letter. Bare numbers and markup such as "1." or "---" are not words.
func WordCount(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			n++
		}
	}
	return n
}

// EstimateDuration maps a word count to a spoken-duration bucket.
func EstimateDuration(words int) string {
	minutes := float64(words) / WordsPerMinute
	switch {
	case minutes < 2:
		return "1-2 minutes"
	case minutes < 5:
		return "3-5 minutes"
	case minutes < 10:
		return "5-10 minutes"
	case minutes < 15:
		return "10-15 minutes"
	default:
		return "15+ minutes"
	}
}

// Sections returns the titles of "##"-or-deeper headings in order, with
// timing annotations like "(0:00-0:15)" removed.
func Sections(text string) []string {
	sections := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "##") {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if open := strings.Index(title, "("); open >= 0 && strings.Contains(title, ")") {
			title = strings.TrimSpace(title[:open])
		}
		if title != "" {
			sections = append(sections, title)
		}
	}
	return sections
}

// Stats summarizes a script.
type Stats struct {
	WordCount         int      `json:"word_count"`
	EstimatedDuration string   `json:"estimated_duration"`
	Sections          []string `json:"sections"`
	Paragraphs        int      `json:"paragraphs"`
}

// Analyze computes Stats for text.
func Analyze(text string) Stats {
	words := WordCount(text)
	return Stats{
		WordCount:         words,
		EstimatedDuration: EstimateDuration(words),
		Sections:          Sections(text),
		Paragraphs:        len(Paragraphs(text)),
	}
}
