package model

// GeneralOpenAIRequest is the provider-agnostic chat completion request.
// Adaptors convert it into each provider's native shape.
type GeneralOpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Tools       []Tool    `json:"tools,omitempty"`
	ToolChoice  any       `json:"tool_choice,omitempty"`
}

// Usage carries provider token accounting, passed through to callers.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResult is the normalized provider response the orchestrator works
// with: the assistant text, any requested tool calls, and usage.
type ChatResult struct {
	Content   string `json:"content"`
	ToolCalls []Tool `json:"tool_calls,omitempty"`
	Usage     *Usage `json:"usage,omitempty"`
}
