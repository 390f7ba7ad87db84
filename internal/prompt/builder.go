// Package prompt assembles the text sent to generation backends from a
// template, a topic brief and an optional reference excerpt.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// Slot marks where the topic goes in a template.
const Slot = "{}"

//go:embed default_template.txt
var defaultTemplate string

//go:embed requirements.tmpl
var requirementsSrc string

var requirementsTmpl = template.Must(template.New("requirements").Parse(requirementsSrc))

// DefaultTemplate returns the built-in prompt template.
func DefaultTemplate() string {
	return strings.TrimSpace(defaultTemplate)
}

// Builder turns briefs into prompts. A Builder is immutable and safe for
// concurrent use.
type Builder struct {
	template string
	corpus   []string
}

// NewBuilder creates a Builder over a template and a reference corpus.
// Either may be empty.
func NewBuilder(tmpl string, corpus []string) *Builder {
	return &Builder{
		template: tmpl,
		corpus:   append([]string(nil), corpus...),
	}
}

// CorpusSize returns the number of reference entries.
func (b *Builder) CorpusSize() int {
	return len(b.corpus)
}

// Build produces the prompt for a brief. The topic replaces the first slot in
// the template; a template without a slot gets a topic sentence appended.
func (b *Builder) Build(brief Brief) (string, error) {
	var sb strings.Builder
	sb.WriteString(substitute(b.template, brief.Topic))

	if brief.HasOptions() {
		var buf bytes.Buffer
		if err := requirementsTmpl.Execute(&buf, ResolveRequirements(brief)); err != nil {
			return "", fmt.Errorf("rendering requirements: %w", err)
		}
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(buf.String()))
	}

	if ref, ok := SelectReference(b.corpus, brief.Topic); ok {
		sb.WriteString("\n\nReference Script Excerpts:\n")
		sb.WriteString(ref)
	}
	return sb.String(), nil
}

func substitute(tmpl, topic string) string {
	if strings.Contains(tmpl, Slot) {
		return strings.Replace(tmpl, Slot, topic, 1)
	}
	sentence := fmt.Sprintf("The topic of the script is: %s.", topic)
	body := strings.TrimRight(tmpl, " \t\r\n")
	if strings.TrimSpace(body) == "" {
		return sentence
	}
	return body + "\n\n" + sentence
}
