package render

import "strings"

// canvas is the drawing surface the PDF writers need. fpdfCanvas implements
// it; tests use a fake that records placements.
type canvas interface {
	AddPage()
	SetFont(family, style string, size float64)
	Width(text string) float64
	Text(x, y float64, text string)
	Err() error
}

type fontSet struct {
	body string
	code string
}

// pager places lines top to bottom and starts a new page when the next line
// would cross the bottom margin.
type pager struct {
	c     canvas
	geom  pageGeometry
	y     float64
	pages int
}

func newPager(c canvas, geom pageGeometry) *pager {
	p := &pager{c: c, geom: geom}
	p.newPage()
	return p
}

func (p *pager) newPage() {
	p.c.AddPage()
	p.pages++
	p.y = pageMargin
}

func (p *pager) contentWidth() float64 {
	return p.geom.width - 2*pageMargin
}

// space adds vertical space, except at the top of a page.
func (p *pager) space(h float64) {
	if p.y > pageMargin {
		p.y += h
	}
}

// line draws one laid-out line at the left margin.
func (p *pager) line(words []word, family string, size float64) {
	h := size * leading
	if p.y+h > p.geom.height-pageMargin && p.y > pageMargin {
		p.newPage()
	}
	baseline := p.y + size
	x := pageMargin
	for i, w := range words {
		p.c.SetFont(family, w.style, size)
		if i > 0 {
			x += p.c.Width(" ")
		}
		p.c.Text(x, baseline, w.text)
		x += p.c.Width(w.text)
	}
	p.y += h
}

func (p *pager) measure(family string, size float64) measureFunc {
	return func(text, style string) float64 {
		p.c.SetFont(family, style, size)
		return p.c.Width(text)
	}
}

func (p *pager) paragraph(words []word, family string, size float64) {
	for _, l := range wrapWords(words, p.contentWidth(), p.measure(family, size)) {
		p.line(l, family, size)
	}
}

// writeDocument lays out a parsed document with headings, emphasis and code.
func writeDocument(c canvas, doc Document, geom pageGeometry, fonts fontSet) error {
	p := newPager(c, geom)
	for _, b := range doc.Blocks {
		switch b.Kind {
		case KindHeading:
			size := headingSizes[b.Level]
			words := textToWords(b.Text)
			for i := range words {
				words[i].style = styleBold
			}
			p.space(size * 0.5)
			p.paragraph(words, fonts.body, size)
			p.space(headingSpace)

		case KindParagraph:
			p.paragraph(spansToWords(b.Spans), fonts.body, bodySize)
			p.space(blockSpace)

		case KindCode:
			measure := p.measure(fonts.code, codeSize)
			for _, raw := range strings.Split(b.Text, "\n") {
				raw = strings.TrimRight(strings.ReplaceAll(raw, "\t", "    "), " ")
				if raw == "" {
					p.line(nil, fonts.code, codeSize)
					continue
				}
				for _, piece := range splitWide(word{text: raw}, p.contentWidth(), measure) {
					p.line([]word{piece}, fonts.code, codeSize)
				}
			}
			p.space(codeSpacer)
		}
	}
	return c.Err()
}

// writeSimple lays out already-sanitized text as plain headings and
// paragraphs with no emphasis or code styling.
func writeSimple(c canvas, text string, geom pageGeometry) error {
	p := newPager(c, geom)
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		p.paragraph(textToWords(strings.Join(para, "\n")), "Helvetica", bodySize)
		p.space(blockSpace)
		para = para[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			if h := strings.TrimSpace(strings.TrimLeft(trimmed, "#")); h != "" {
				words := textToWords(h)
				for i := range words {
					words[i].style = styleBold
				}
				p.paragraph(words, "Helvetica", simpleHeading)
				p.space(headingSpace)
			}
		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return c.Err()
}
