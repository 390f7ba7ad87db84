package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTopicLength is the topic limit when none is configured.
const DefaultMaxTopicLength = 200

// ValidationError reports a topic the caller must fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateTopic rejects blank topics and topics longer than max characters.
// A non-positive max means DefaultMaxTopicLength.
func ValidateTopic(topic string, max int) error {
	if max <= 0 {
		max = DefaultMaxTopicLength
	}
	if strings.TrimSpace(topic) == "" {
		return &ValidationError{Message: "Topic cannot be empty"}
	}
	if utf8.RuneCountInString(topic) > max {
		return &ValidationError{Message: fmt.Sprintf("Topic too long (max %d characters)", max)}
	}
	return nil
}
