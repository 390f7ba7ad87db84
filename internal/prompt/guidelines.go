package prompt

import "strings"

const (
	DefaultStyle    = "educational"
	DefaultDuration = "medium"
	DefaultAudience = "general"
)

var durationGuidelines = map[string]string{
	"short":  "2-5 minutes (300-750 words)",
	"medium": "5-10 minutes (750-1500 words)",
	"long":   "10+ minutes (1500+ words)",
}

var styleGuidelines = map[string]string{
	"educational":   "Focus on teaching and explaining concepts clearly with examples",
	"entertainment": "Make it engaging, fun, and entertaining with humor and storytelling",
	"tutorial":      "Provide step-by-step instructions with practical demonstrations",
	"review":        "Give honest opinions, pros/cons, and detailed analysis",
}

var audienceGuidelines = map[string]string{
	"general":   "Use accessible language that anyone can understand",
	"beginners": "Explain basic concepts thoroughly with simple examples",
	"advanced":  "Use technical terminology and dive deep into complex topics",
	"kids":      "Use simple words, fun examples, and engaging storytelling",
}

var languageLabels = map[string]string{
	"english":    "English",
	"roman_urdu": "Roman Urdu (Urdu written in Latin script, mixed with simple English phrases)",
	"urdu":       "Urdu",
	"hindi":      "Hindi",
}

// Requirements is the resolved guideline text for a brief.
type Requirements struct {
	Duration string
	Style    string
	Audience string
	Language string
}

// ResolveRequirements maps brief options to guideline text. Unknown or empty
// values resolve to the defaults; an unknown language is passed through as
// free text.
func ResolveRequirements(b Brief) Requirements {
	return Requirements{
		Duration: lookup(durationGuidelines, b.Duration, DefaultDuration),
		Style:    lookup(styleGuidelines, b.Style, DefaultStyle),
		Audience: lookup(audienceGuidelines, b.Audience, DefaultAudience),
		Language: languageLabel(b.Language),
	}
}

func lookup(m map[string]string, key, def string) string {
	if v, ok := m[strings.ToLower(strings.TrimSpace(key))]; ok {
		return v
	}
	return m[def]
}

func languageLabel(lang string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if key == "" {
		return ""
	}
	if label, ok := languageLabels[key]; ok {
		return label
	}
	return strings.TrimSpace(lang)
}

// KnownStyles returns the recognized style values.
func KnownStyles() []string {
	return []string{"educational", "entertainment", "tutorial", "review"}
}

// KnownDurations returns the recognized duration values.
func KnownDurations() []string {
	return []string{"short", "medium", "long"}
}

// KnownAudiences returns the recognized audience values.
func KnownAudiences() []string {
	return []string{"general", "beginners", "advanced", "kids"}
}
