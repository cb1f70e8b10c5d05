// Package openai_compatible holds the request and response handling
// shared by every provider that speaks the OpenAI chat completions
// dialect.
package openai_compatible

import (
	"encoding/json"
	"strings"

	"github.com/Laisky/errors/v2"

	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

// ChatCompletionsPath is the endpoint every OpenAI-compatible provider
// serves chat on.
const ChatCompletionsPath = "/chat/completions"

// GetFullRequestURL joins the provider base URL with the chat
// completions path, tolerating trailing slashes and bases that already
// include a /v1 suffix.
func GetFullRequestURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + ChatCompletionsPath
}

// TextResponse is the non-streaming chat completions response body.
type TextResponse struct {
	Id      string `json:"id"`
	Choices []struct {
		Index   int                `json:"index"`
		Message relaymodel.Message `json:"message"`
		// FinishReason is "tool_calls" when the model wants tools run.
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *relaymodel.Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ParseChatResponse normalizes an OpenAI-style response body into a
// ChatResult. Error envelopes returned with a 2xx status still surface
// as errors.
func ParseChatResponse(body []byte) (*relaymodel.ChatResult, error) {
	var response TextResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "unmarshal chat response")
	}
	if response.Error != nil && response.Error.Message != "" {
		return nil, errors.Errorf("provider error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("provider returned no choices")
	}

	message := response.Choices[0].Message
	return &relaymodel.ChatResult{
		Content:   message.Content,
		ToolCalls: message.ToolCalls,
		Usage:     response.Usage,
	}, nil
}
