package prompt

// Brief is everything a caller knows about the script it wants.
// Only Topic is required.
type Brief struct {
	Topic    string `json:"topic"`
	Style    string `json:"style,omitempty"`
	Duration string `json:"duration,omitempty"`
	Audience string `json:"target_audience,omitempty"`
	Language string `json:"language,omitempty"`
}

// HasOptions reports whether any of the optional fields are set.
func (b Brief) HasOptions() bool {
	return b.Style != "" || b.Duration != "" || b.Audience != "" || b.Language != ""
}
