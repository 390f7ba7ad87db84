package render

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/shaheeralics/scriptwriter/internal/metrics"
)

// Page geometry, in points.
const (
	pageMargin    = 72.0
	headingSpace  = 4.0
	blockSpace    = 6.0
	codeSpacer    = 6.0
	bodySize      = 10.0
	codeSize      = 9.0
	simpleHeading = 12.0
	leading       = 1.2
)

var headingSizes = map[int]float64{1: 18, 2: 14, 3: 12}

type pageGeometry struct {
	name   string
	width  float64
	height float64
}

var pageSizes = map[string]pageGeometry{
	"letter": {name: "Letter", width: 612, height: 792},
	"a4":     {name: "A4", width: 595.28, height: 841.89},
}

func geometryFor(size string) pageGeometry {
	if g, ok := pageSizes[strings.ToLower(size)]; ok {
		return g
	}
	return pageSizes["letter"]
}

// ExportError is returned when both the rich and the simplified PDF
// renderers fail.
type ExportError struct {
	Rich   error
	Simple error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("pdf export failed: rich renderer: %v; simplified renderer: %v", e.Rich, e.Simple)
}

func (e *ExportError) Unwrap() []error {
	return []error{e.Rich, e.Simple}
}

// ErrUnsupportedChar is wrapped by the rich renderer when the text holds a
// character the configured fonts cannot encode.
var ErrUnsupportedChar = errors.New("unsupported character")

// PDFOptions configures the exporter.
type PDFOptions struct {
	PageSize string // "Letter" or "A4"
	FontFile string // optional UTF-8 TrueType font for body and code text
	Logger   *log.Logger
}

// PDFResult is a rendered PDF.
type PDFResult struct {
	Data     []byte
	Degraded bool  // produced by the simplified renderer
	Cause    error // why the rich renderer was skipped, when Degraded
}

// Exporter renders scripts to PDF, degrading to a simplified renderer when
// the rich one fails.
type Exporter struct {
	geom   pageGeometry
	font   string
	logger *log.Logger

	rich   func(doc Document, title string) ([]byte, error)
	simple func(src, title string) ([]byte, error)
}

// NewExporter creates an Exporter.
func NewExporter(opts PDFOptions) *Exporter {
	e := &Exporter{
		geom:   geometryFor(opts.PageSize),
		font:   opts.FontFile,
		logger: opts.Logger,
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	e.rich = e.renderRich
	e.simple = e.renderSimple
	return e
}

// PDF renders markdown to a PDF document. The source text is never modified.
func (e *Exporter) PDF(src, title string) (*PDFResult, error) {
	metrics.ExportsTotal.WithLabelValues("pdf").Inc()

	doc := Parse(src)
	data, richErr := guard(func() ([]byte, error) { return e.rich(doc, title) })
	if richErr == nil {
		return &PDFResult{Data: data}, nil
	}

	e.logger.Printf("render: rich pdf failed, using simplified renderer: %v", richErr)
	metrics.RenderFallbacksTotal.Inc()

	data, simpleErr := guard(func() ([]byte, error) { return e.simple(src, title) })
	if simpleErr != nil {
		return nil, &ExportError{Rich: richErr, Simple: simpleErr}
	}
	return &PDFResult{Data: data, Degraded: true, Cause: richErr}, nil
}

// guard converts a panic inside fn into an error.
func guard(fn func() ([]byte, error)) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("pdf renderer panic: %v", r)
		}
	}()
	return fn()
}

func (e *Exporter) newPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", e.geom.name, "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCreator("scriptwriter", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	return pdf
}

func (e *Exporter) renderRich(doc Document, title string) ([]byte, error) {
	pdf := e.newPDF(title)
	c := &fpdfCanvas{pdf: pdf}
	fonts := fontSet{body: "Helvetica", code: "Courier"}

	if e.font != "" {
		for _, style := range []string{styleRegular, styleBold, styleItalic, styleBoldItalic} {
			pdf.AddUTF8Font("body", style, e.font)
		}
		if pdf.Err() {
			return nil, fmt.Errorf("registering font %s: %w", e.font, pdf.Error())
		}
		fonts = fontSet{body: "body", code: "body"}
		if err := checkEncodable(doc, func(r rune) bool { return r != utf8.RuneError }); err != nil {
			return nil, err
		}
	} else {
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
		if err := checkEncodable(doc, cp1252Encodable(c.tr)); err != nil {
			return nil, err
		}
	}

	if err := writeDocument(c, doc, e.geom, fonts); err != nil {
		return nil, err
	}
	return output(pdf)
}

func (e *Exporter) renderSimple(src, title string) ([]byte, error) {
	pdf := e.newPDF(asciiOnly(title))
	c := &fpdfCanvas{pdf: pdf}
	if err := writeSimple(c, asciiOnly(src), e.geom); err != nil {
		return nil, err
	}
	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// checkEncodable reports the first character in doc the fonts cannot draw.
// Control characters other than newline and tab never can.
func checkEncodable(doc Document, ok func(rune) bool) error {
	for i, b := range doc.Blocks {
		if !utf8.ValidString(b.Text) {
			return fmt.Errorf("block %d: invalid UTF-8: %w", i, ErrUnsupportedChar)
		}
		for _, r := range b.Text {
			if r == '\n' || r == '\t' {
				continue
			}
			if unicode.IsControl(r) || !ok(r) {
				return fmt.Errorf("block %d: %q: %w", i, r, ErrUnsupportedChar)
			}
		}
	}
	return nil
}

// cp1252Encodable reports whether the core-font translator maps r. fpdf's
// translator substitutes '.' for runes outside the code page.
func cp1252Encodable(tr func(string) string) func(rune) bool {
	return func(r rune) bool {
		if r < 0x80 {
			return true
		}
		return r == '.' || tr(string(r)) != "."
	}
}

// asciiOnly repairs invalid UTF-8, replaces non-ASCII characters with '?'
// and drops control characters other than newlines. Tabs become spaces.
func asciiOnly(s string) string {
	s = strings.ToValidUTF8(s, "?")
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
		case r > 0x7e:
			sb.WriteByte('?')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// fpdfCanvas adapts fpdf to the canvas interface, translating text for core
// fonts when tr is set.
type fpdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (f *fpdfCanvas) text(s string) string {
	if f.tr == nil {
		return s
	}
	return f.tr(s)
}

func (f *fpdfCanvas) AddPage() {
	f.pdf.AddPage()
}

func (f *fpdfCanvas) SetFont(family, style string, size float64) {
	f.pdf.SetFont(family, style, size)
}

func (f *fpdfCanvas) Width(s string) float64 {
	return f.pdf.GetStringWidth(f.text(s))
}

func (f *fpdfCanvas) Text(x, y float64, s string) {
	f.pdf.Text(x, y, f.text(s))
}

func (f *fpdfCanvas) Err() error {
	return f.pdf.Error()
}
