// Package render turns script markdown into an HTML preview, a paginated PDF
// and plain-text downloads.
package render

import (
	"html"
	"strings"
)

// Kind is the type of a Block.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// MaxHeadingLevel is the deepest heading level kept; deeper headings are
// clamped to it.
const MaxHeadingLevel = 3

// Block is one structural unit of a document.
type Block struct {
	Kind  Kind
	Level int    // headings only, 1..MaxHeadingLevel
	Text  string // plain text; code keeps its whitespace
	Spans []Span // paragraphs only
	Lang  string // code only, from the fence info string
}

// Document is the typed block sequence parsed from markdown.
type Document struct {
	Blocks []Block
}

// Count returns the number of blocks of kind k.
func (d Document) Count(k Kind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// Parse scans markdown into blocks. Blank lines separate blocks; a line whose
// trimmed text starts with '#' is a heading; ``` and ~~~ fences and <pre>
// elements are code; everything else is paragraph text with its line breaks
// kept.
func Parse(markdown string) Document {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	lines := strings.Split(markdown, "\n")

	var doc Document
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		spans := ParseInline(strings.Join(para, "\n"))
		doc.Blocks = append(doc.Blocks, Block{
			Kind:  KindParagraph,
			Text:  plainText(spans),
			Spans: spans,
		})
		para = para[:0]
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "":
			flush()

		case isFence(trimmed):
			flush()
			marker := trimmed[:3]
			lang := strings.TrimSpace(strings.TrimLeft(trimmed, marker[:1]))
			var body []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), marker) {
					break
				}
				body = append(body, lines[i])
			}
			doc.Blocks = append(doc.Blocks, Block{Kind: KindCode, Text: strings.Join(body, "\n"), Lang: lang})

		case hasPrefixFold(trimmed, "<pre"):
			flush()
			var body []string
			for ; i < len(lines); i++ {
				body = append(body, lines[i])
				if strings.Contains(strings.ToLower(lines[i]), "</pre>") {
					break
				}
			}
			doc.Blocks = append(doc.Blocks, Block{Kind: KindCode, Text: stripPre(strings.Join(body, "\n"))})

		case strings.HasPrefix(trimmed, "#"):
			flush()
			if b, ok := parseHeading(trimmed); ok {
				doc.Blocks = append(doc.Blocks, b)
			}

		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return doc
}

func parseHeading(trimmed string) (Block, bool) {
	level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
	text := strings.TrimSpace(trimmed[level:])
	if text == "" {
		return Block{}, false
	}
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return Block{Kind: KindHeading, Level: level, Text: text}, true
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// stripPre removes the <pre> wrapper (and an inner <code> wrapper) and
// unescapes entities, keeping the body's whitespace.
func stripPre(s string) string {
	lower := strings.ToLower(s)
	if start := strings.Index(lower, "<pre"); start >= 0 {
		if end := strings.Index(lower[start:], ">"); end >= 0 {
			s, lower = s[start+end+1:], lower[start+end+1:]
		}
	}
	if end := strings.LastIndex(lower, "</pre>"); end >= 0 {
		s, lower = s[:end], lower[:end]
	}
	if strings.HasPrefix(lower, "<code") {
		if end := strings.Index(lower, ">"); end >= 0 {
			s, lower = s[end+1:], lower[end+1:]
		}
	}
	if end := strings.LastIndex(lower, "</code>"); end >= 0 {
		s = s[:end]
	}
	return html.UnescapeString(strings.Trim(s, "\n"))
}
