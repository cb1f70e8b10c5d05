// Package anthropic adapts the Claude Messages API to the
// provider-agnostic chat request used by the orchestrator.
package anthropic

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/mcp-chat/common/config"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

const anthropicVersion = "2023-06-01"

// defaultMaxTokens applies when the caller leaves max_tokens unset;
// the Messages API requires it.
const defaultMaxTokens = 4096

type Adaptor struct{}

func (a *Adaptor) GetChannelName() string {
	return "anthropic"
}

func (a *Adaptor) GetRequestURL(option *config.ProviderOption) (string, error) {
	return strings.TrimSuffix(option.BaseURL, "/") + "/messages", nil
}

func (a *Adaptor) SetupRequestHeader(req *http.Request, option *config.ProviderOption) error {
	req.Header.Set("x-api-key", option.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return nil
}

// Request is the Claude Messages API request body.
type Request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	Tools       []tool    `json:"tools,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InputSchema any    `json:"input_schema"`
}

type contentBlock struct {
	Type string `json:"type"`
	// text blocks
	Text string `json:"text,omitempty"`
	// tool_use blocks
	Id    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
	// tool_result blocks
	ToolUseId string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// ConvertRequest maps OpenAI-style messages onto the Messages API.
// System turns collapse into the top-level system field, assistant tool
// calls become tool_use blocks, and tool results become tool_result
// blocks on a user turn.
func (a *Adaptor) ConvertRequest(request *relaymodel.GeneralOpenAIRequest) (any, error) {
	out := Request{
		Model:       request.Model,
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaultMaxTokens
	}

	for _, t := range request.Tools {
		if t.Function == nil {
			continue
		}
		schema := t.Function.Parameters
		if schema == nil {
			schema = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		out.Tools = append(out.Tools, tool{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			InputSchema: schema,
		})
	}

	var systemParts []string
	for _, m := range request.Messages {
		switch m.Role {
		case relaymodel.RoleSystem:
			if m.Content != "" {
				systemParts = append(systemParts, m.Content)
			}
		case relaymodel.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out.Messages = append(out.Messages, message{Role: "assistant", Content: m.Content})
				continue
			}
			blocks := make([]contentBlock, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				blocks = append(blocks, contentBlock{Type: "text", Text: m.Content})
			}
			for _, call := range m.ToolCalls {
				if call.Function == nil {
					continue
				}
				input := json.RawMessage(call.Function.Arguments)
				if len(input) == 0 || !json.Valid(input) {
					input = json.RawMessage("{}")
				}
				blocks = append(blocks, contentBlock{
					Type:  "tool_use",
					Id:    call.Id,
					Name:  call.Function.Name,
					Input: input,
				})
			}
			out.Messages = append(out.Messages, message{Role: "assistant", Content: blocks})
		case relaymodel.RoleTool:
			out.Messages = append(out.Messages, message{
				Role: "user",
				Content: []contentBlock{{
					Type:      "tool_result",
					ToolUseId: m.ToolCallId,
					Content:   m.Content,
				}},
			})
		default:
			out.Messages = append(out.Messages, message{Role: "user", Content: m.Content})
		}
	}
	out.System = strings.Join(systemParts, "\n\n")

	return &out, nil
}

// Response is the Claude Messages API response body.
type Response struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponse flattens text blocks into the content string and turns
// tool_use blocks back into OpenAI-style tool calls.
func (a *Adaptor) ParseResponse(body []byte) (*relaymodel.ChatResult, error) {
	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "unmarshal messages response")
	}
	if response.Error != nil && response.Error.Message != "" {
		return nil, errors.Errorf("provider error: %s", response.Error.Message)
	}

	result := &relaymodel.ChatResult{
		Usage: &relaymodel.Usage{
			PromptTokens:     response.Usage.InputTokens,
			CompletionTokens: response.Usage.OutputTokens,
			TotalTokens:      response.Usage.InputTokens + response.Usage.OutputTokens,
		},
	}

	var textParts []string
	for _, block := range response.Content {
		switch block.Type {
		case "text":
			textParts = append(textParts, block.Text)
		case "tool_use":
			arguments := string(block.Input)
			if arguments == "" {
				arguments = "{}"
			}
			result.ToolCalls = append(result.ToolCalls, relaymodel.Tool{
				Id:   block.Id,
				Type: "function",
				Function: &relaymodel.Function{
					Name:      block.Name,
					Arguments: arguments,
				},
			})
		}
	}
	result.Content = strings.Join(textParts, "")

	return result, nil
}
