package render

import (
	"strings"
	"unicode"
)

// Span is a run of text with one emphasis style.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// ParseInline splits paragraph text into styled spans. **x** and __x__ are
// bold, *x* and _x_ italic; underscores only count at word boundaries. Any
// other markup, and markers without a closing partner, stay literal.
func ParseInline(text string) []Span {
	return mergeSpans(parseSpans([]rune(text), false, false))
}

func parseSpans(rs []rune, bold, italic bool) []Span {
	var spans []Span
	var buf []rune
	flush := func() {
		if len(buf) > 0 {
			spans = append(spans, Span{Text: string(buf), Bold: bold, Italic: italic})
			buf = nil
		}
	}

	var closers *closerIndex
	for i := 0; i < len(rs); {
		if marker := openerAt(rs, i); marker != "" {
			if closers == nil {
				closers = newCloserIndex(rs)
			}
			n := len(marker)
			if end := closers.after(i+n, marker); end >= 0 {
				flush()
				inner := rs[i+n : end]
				if n == 2 {
					spans = append(spans, parseSpans(inner, true, italic)...)
				} else {
					spans = append(spans, parseSpans(inner, bold, true)...)
				}
				i = end + n
				continue
			}
		}
		buf = append(buf, rs[i])
		i++
	}
	flush()
	return spans
}

// openerAt returns the emphasis marker starting at i, or "" if there is none.
func openerAt(rs []rune, i int) string {
	c := rs[i]
	if c != '*' && c != '_' {
		return ""
	}
	if c == '_' && i > 0 && isWordRune(rs[i-1]) {
		return ""
	}
	marker := string(c)
	if i+1 < len(rs) && rs[i+1] == c {
		marker += string(c)
	}
	next := i + len(marker)
	if next >= len(rs) || unicode.IsSpace(rs[next]) {
		return ""
	}
	return marker
}

// closerIndex holds, for every position k, the first closing marker found by
// scanning from k, one table per marker.
type closerIndex struct {
	next map[string][]int
}

// newCloserIndex scans rs once. Marker runs are split into chunks of at most
// three; a chunk preceded by a space never closes. In a chunk of three a
// double closer takes the last two and a single closer the first one.
func newCloserIndex(rs []rune) *closerIndex {
	n := len(rs)
	idx := &closerIndex{next: make(map[string][]int, 4)}
	for _, m := range []string{"*", "**", "_", "__"} {
		t := make([]int, n+2)
		for k := range t {
			t[k] = -1
		}
		idx.next[m] = t
	}

	for a := 0; a < n; {
		c := rs[a]
		if c != '*' && c != '_' {
			a++
			continue
		}
		b := a
		for b < n && rs[b] == c {
			b++
		}
		for j := a; j < b; j += 3 {
			if j == 0 || unicode.IsSpace(rs[j-1]) {
				continue
			}
			run := min(3, b-j)
			for _, m := range []string{string(c), string(c) + string(c)} {
				pos := -1
				switch {
				case len(m) == 2 && run == 2:
					pos = j
				case len(m) == 2 && run == 3:
					pos = j + 1
				case len(m) == 1 && run != 2:
					pos = j
				}
				if pos < 0 {
					continue
				}
				after := pos + len(m)
				if c == '_' && after < n && isWordRune(rs[after]) {
					continue
				}
				idx.next[m][j] = pos
			}
		}
		a = b
	}

	for _, t := range idx.next {
		for k := n; k >= 0; k-- {
			if t[k] < 0 {
				t[k] = t[k+1]
			}
		}
	}
	return idx
}

// after returns the index of the marker closing an opener whose content
// starts at start, or -1.
func (c *closerIndex) after(start int, marker string) int {
	t := c.next[marker]
	if start+1 >= len(t) {
		return -1
	}
	return t[start+1]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func mergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Bold == s.Bold && out[n-1].Italic == s.Italic {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

func plainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
