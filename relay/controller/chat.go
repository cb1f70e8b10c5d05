// Package controller implements the chat orchestration flow: one
// decide round against the configured provider, tool dispatch for any
// requested calls, and one resolve round for the final answer.
package controller

import (
	"encoding/json"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/relay"
	"github.com/Laisky/mcp-chat/relay/adaptor"
	"github.com/Laisky/mcp-chat/relay/mcp"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

// ChatSettings are the per-request provider knobs.
type ChatSettings struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []relaymodel.Message `json:"messages" binding:"required,min=1"`
	Settings *ChatSettings        `json:"settings"`
}

// ToolResult reports one dispatched tool call back to the caller.
type ToolResult struct {
	ToolCallId string `json:"tool_call_id"`
	ToolName   string `json:"tool_name"`
	Connection string `json:"connection,omitempty"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Success    bool   `json:"success"`
}

// ChatResponse is the payload of a successful chat turn.
type ChatResponse struct {
	Content       string            `json:"content"`
	ToolCalls     []relaymodel.Tool `json:"tool_calls,omitempty"`
	ToolResults   []ToolResult      `json:"tool_results,omitempty"`
	Usage         *relaymodel.Usage `json:"usage,omitempty"`
	FinalResponse bool              `json:"final_response,omitempty"`
}

// Orchestrator drives chat turns against the configured provider,
// routing any requested tool calls through the dispatcher.
type Orchestrator struct {
	dispatcher *mcp.Dispatcher
}

// NewOrchestrator wires an orchestrator over the given dispatcher.
func NewOrchestrator(dispatcher *mcp.Dispatcher) *Orchestrator {
	return &Orchestrator{dispatcher: dispatcher}
}

// Chat runs one full chat turn. When the provider requests tool calls,
// each call is dispatched in order, the results are appended as tool
// turns, and a single follow-up completion produces the final answer.
func (o *Orchestrator) Chat(c *gin.Context, request *ChatRequest) (*ChatResponse, error) {
	lg := gmw.GetLogger(c)
	ctx := gmw.Ctx(c)

	option := config.SelectedProvider()
	if option == nil {
		return nil, errors.Errorf("unknown AI provider %q", config.AIProvider)
	}
	providerAdaptor := relay.GetAdaptor(config.AIProvider)
	if providerAdaptor == nil {
		return nil, errors.Errorf("no adaptor for provider %q", config.AIProvider)
	}

	upstream := &relaymodel.GeneralOpenAIRequest{
		Model:    option.DefaultModel,
		Messages: conversationMessages(request.Messages),
	}
	if request.Settings != nil {
		if request.Settings.Model != "" {
			upstream.Model = request.Settings.Model
		}
		upstream.Temperature = request.Settings.Temperature
		upstream.MaxTokens = request.Settings.MaxTokens
	}

	tools := o.dispatcher.AggregateTools(ctx)
	if schema := mcp.BuildFunctionSchema(tools); len(schema) > 0 {
		upstream.Tools = schema
		upstream.ToolChoice = "auto"
	}

	lg.Debug("starting chat turn",
		zap.String("provider", config.AIProvider),
		zap.String("model", upstream.Model),
		zap.Int("message_count", len(upstream.Messages)),
		zap.Int("tool_count", len(tools)))

	decided, err := adaptor.DoRequest(ctx, providerAdaptor, option, upstream)
	if err != nil {
		return nil, errors.Wrap(err, "provider decide round")
	}

	if len(decided.ToolCalls) == 0 {
		return &ChatResponse{
			Content: decided.Content,
			Usage:   decided.Usage,
		}, nil
	}

	// Resolve round: dispatch every requested call, failures included,
	// then hand the transcript back to the provider for a final answer.
	upstream.Messages = append(upstream.Messages, relaymodel.Message{
		Role:      relaymodel.RoleAssistant,
		Content:   decided.Content,
		ToolCalls: decided.ToolCalls,
	})

	toolResults := make([]ToolResult, 0, len(decided.ToolCalls))
	for _, call := range decided.ToolCalls {
		if call.Function == nil || call.Function.Name == "" {
			continue
		}

		args := parseToolArguments(c, call.Function.Arguments)
		result := ToolResult{
			ToolCallId: call.Id,
			ToolName:   call.Function.Name,
		}

		dispatched, dispatchErr := o.dispatcher.Dispatch(ctx, call.Function.Name, args)
		var content string
		if dispatchErr != nil {
			lg.Warn("tool dispatch failed",
				zap.String("tool", call.Function.Name),
				zap.Error(dispatchErr))
			result.Error = dispatchErr.Error()
			content = "Error: " + dispatchErr.Error()
		} else {
			result.Success = true
			result.Result = dispatched.Result
			result.Connection = dispatched.Connection.Name
			content = dispatched.Result
		}
		toolResults = append(toolResults, result)

		upstream.Messages = append(upstream.Messages, relaymodel.Message{
			Role:       relaymodel.RoleTool,
			Content:    content,
			ToolCallId: call.Id,
		})
	}

	resolved, err := adaptor.DoRequest(ctx, providerAdaptor, option, upstream)
	if err != nil {
		lg.Warn("follow-up provider call failed, returning decide-round content",
			zap.Error(err))
		return &ChatResponse{
			Content:     decided.Content,
			ToolCalls:   decided.ToolCalls,
			ToolResults: toolResults,
			Usage:       decided.Usage,
		}, nil
	}

	return &ChatResponse{
		Content:       resolved.Content,
		ToolCalls:     decided.ToolCalls,
		ToolResults:   toolResults,
		Usage:         mergeUsage(decided.Usage, resolved.Usage),
		FinalResponse: true,
	}, nil
}

// conversationMessages keeps only turns that belong in a provider
// conversation; tool turns from a previous exchange are rebuilt during
// the resolve round, never forwarded verbatim.
func conversationMessages(messages []relaymodel.Message) []relaymodel.Message {
	out := make([]relaymodel.Message, 0, len(messages))
	for _, m := range messages {
		if relaymodel.IsConversationRole(m.Role) {
			out = append(out, m)
		}
	}
	return out
}

// parseToolArguments decodes model-provided arguments, treating any
// malformed payload as an empty argument object.
func parseToolArguments(c *gin.Context, raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		gmw.GetLogger(c).Debug("malformed tool arguments, using empty object",
			zap.String("arguments", raw))
		return map[string]any{}
	}
	return args
}

// mergeUsage sums token accounting across both provider rounds.
func mergeUsage(first, second *relaymodel.Usage) *relaymodel.Usage {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return &relaymodel.Usage{
		PromptTokens:     first.PromptTokens + second.PromptTokens,
		CompletionTokens: first.CompletionTokens + second.CompletionTokens,
		TotalTokens:      first.TotalTokens + second.TotalTokens,
	}
}
