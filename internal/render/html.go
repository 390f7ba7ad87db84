package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/shaheeralics/scriptwriter/internal/metrics"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HighlightStyle is the chroma style used for code in previews.
const HighlightStyle = "github"

// Raw HTML is omitted by goldmark unless html.WithUnsafe is set, so the
// preview never carries script or style markup from the model.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle(HighlightStyle),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

var highlightCSS = func() string {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return ""
	}
	return buf.String()
}()

var preBlock = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)

// Fragment converts markdown to sanitized HTML without a page wrapper.
func Fragment(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(preToFence(src)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Preview renders markdown as a standalone HTML page with the preview
// stylesheet.
func Preview(src, title string) ([]byte, error) {
	metrics.ExportsTotal.WithLabelValues("html").Inc()
	body, err := Fragment(src)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = "YouTube Script"
	}
	data := struct {
		Title   string
		CSS     template.CSS
		Content template.HTML
	}{
		Title:   title,
		CSS:     template.CSS(previewCSS + highlightCSS),
		Content: template.HTML(body),
	}
	var out bytes.Buffer
	if err := pageTmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("rendering preview page: %w", err)
	}
	return out.Bytes(), nil
}

// preToFence rewrites <pre> elements as fenced code so they survive the
// raw-HTML filter with their content escaped.
func preToFence(src string) string {
	return preBlock.ReplaceAllStringFunc(src, func(m string) string {
		body := stripPre(m)
		fence := "```"
		for strings.Contains(body, fence) {
			fence += "`"
		}
		return "\n" + fence + "\n" + body + "\n" + fence + "\n"
	})
}
