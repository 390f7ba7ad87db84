package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for a completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of a completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// PromptRequest frames a single prompt as a chat exchange, with an optional
// system message ahead of it.
func PromptRequest(system, prompt string, maxTokens int, temperature float64) CompletionRequest {
	var msgs []Message
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})
	return CompletionRequest{
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// defaultMaxTokens is used when a request leaves MaxTokens unset.
const defaultMaxTokens = 2048
