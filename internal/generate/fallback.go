package generate

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/shaheeralics/scriptwriter/internal/prompt"
)

//go:embed fallback.tmpl
var fallbackSrc string

var fallbackTmpl = template.Must(template.New("fallback").Parse(fallbackSrc))

// TemplateScript synthesizes a multi-section script skeleton for the brief.
// It is the last tier of the chain and always returns non-empty text.
func TemplateScript(brief prompt.Brief) string {
	topic := strings.TrimSpace(brief.Topic)
	if topic == "" {
		topic = "this topic"
	}
	style := strings.ToLower(strings.TrimSpace(brief.Style))
	if style == "" {
		style = prompt.DefaultStyle
	}

	var buf bytes.Buffer
	data := struct{ Topic, Style string }{Topic: topic, Style: style}
	if err := fallbackTmpl.Execute(&buf, data); err != nil {
		return "# " + topic + "\n\nA script about " + topic + "."
	}
	return strings.TrimSpace(buf.String())
}
