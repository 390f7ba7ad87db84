package render

import (
	"strings"
	"unicode/utf8"
)

// Font styles as fpdf spells them.
const (
	styleRegular    = ""
	styleBold       = "B"
	styleItalic     = "I"
	styleBoldItalic = "BI"
)

func spanStyle(s Span) string {
	switch {
	case s.Bold && s.Italic:
		return styleBoldItalic
	case s.Bold:
		return styleBold
	case s.Italic:
		return styleItalic
	default:
		return styleRegular
	}
}

// word is a unit of line layout. A break word forces a new line.
type word struct {
	text  string
	style string
	brk   bool
}

// measureFunc returns the width of text in the given style.
type measureFunc func(text, style string) float64

// spansToWords splits spans on whitespace, keeping explicit newlines as
// break words.
func spansToWords(spans []Span) []word {
	var words []word
	for _, s := range spans {
		st := spanStyle(s)
		lines := strings.Split(s.Text, "\n")
		for li, line := range lines {
			if li > 0 {
				words = append(words, word{brk: true})
			}
			for _, f := range strings.Fields(line) {
				words = append(words, word{text: f, style: st})
			}
		}
	}
	return words
}

// textToWords treats text as a single regular-style span.
func textToWords(text string) []word {
	return spansToWords([]Span{{Text: text}})
}

// wrapWords greedily packs words into lines no wider than maxWidth. A word
// that alone exceeds maxWidth is split across lines.
func wrapWords(words []word, maxWidth float64, measure measureFunc) [][]word {
	var lines [][]word
	var cur []word
	width := 0.0

	push := func() {
		lines = append(lines, cur)
		cur, width = nil, 0
	}

	for _, w := range words {
		if w.brk {
			push()
			continue
		}
		for _, piece := range splitWide(w, maxWidth, measure) {
			pw := measure(piece.text, piece.style)
			if len(cur) == 0 {
				cur, width = []word{piece}, pw
				continue
			}
			gap := measure(" ", piece.style)
			if width+gap+pw > maxWidth {
				push()
				cur, width = []word{piece}, pw
				continue
			}
			cur = append(cur, piece)
			width += gap + pw
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// splitWide breaks a word wider than maxWidth into the longest rune prefixes
// that fit. Each piece holds at least one rune.
func splitWide(w word, maxWidth float64, measure measureFunc) []word {
	if measure(w.text, w.style) <= maxWidth {
		return []word{w}
	}
	var pieces []word
	rest := w.text
	for rest != "" {
		cut := 0
		for cut < len(rest) {
			_, size := utf8.DecodeRuneInString(rest[cut:])
			if cut > 0 && measure(rest[:cut+size], w.style) > maxWidth {
				break
			}
			cut += size
		}
		pieces = append(pieces, word{text: rest[:cut], style: w.style})
		rest = rest[cut:]
	}
	return pieces
}
