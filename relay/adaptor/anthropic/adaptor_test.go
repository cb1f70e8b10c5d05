package anthropic

import (
	"testing"

	"github.com/stretchr/testify/require"

	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

func TestConvertRequestSystemAndTools(t *testing.T) {
	a := &Adaptor{}
	converted, err := a.ConvertRequest(&relaymodel.GeneralOpenAIRequest{
		Model: "claude-3-sonnet-20240229",
		Messages: []relaymodel.Message{
			{Role: relaymodel.RoleSystem, Content: "be helpful"},
			{Role: relaymodel.RoleUser, Content: "hi"},
		},
		Tools: []relaymodel.Tool{{
			Type: "function",
			Function: &relaymodel.Function{
				Name:        "ping",
				Description: "liveness probe",
			},
		}},
	})
	require.NoError(t, err)

	request := converted.(*Request)
	require.Equal(t, "be helpful", request.System)
	require.Equal(t, defaultMaxTokens, request.MaxTokens)
	require.Len(t, request.Messages, 1)
	require.Equal(t, "user", request.Messages[0].Role)
	require.Len(t, request.Tools, 1)
	require.Equal(t, "ping", request.Tools[0].Name)
	// a parameterless tool still needs an input schema
	require.NotNil(t, request.Tools[0].InputSchema)
}

func TestConvertRequestToolTurns(t *testing.T) {
	a := &Adaptor{}
	converted, err := a.ConvertRequest(&relaymodel.GeneralOpenAIRequest{
		Model:     "claude-3-sonnet-20240229",
		MaxTokens: 128,
		Messages: []relaymodel.Message{
			{Role: relaymodel.RoleUser, Content: "ping it"},
			{
				Role:    relaymodel.RoleAssistant,
				Content: "checking",
				ToolCalls: []relaymodel.Tool{{
					Id:       "call_1",
					Type:     "function",
					Function: &relaymodel.Function{Name: "ping", Arguments: `{"host":"x"}`},
				}},
			},
			{Role: relaymodel.RoleTool, Content: "pong", ToolCallId: "call_1"},
		},
	})
	require.NoError(t, err)

	request := converted.(*Request)
	require.Equal(t, 128, request.MaxTokens)
	require.Len(t, request.Messages, 3)

	assistant := request.Messages[1]
	require.Equal(t, "assistant", assistant.Role)
	blocks := assistant.Content.([]contentBlock)
	require.Len(t, blocks, 2)
	require.Equal(t, "text", blocks[0].Type)
	require.Equal(t, "tool_use", blocks[1].Type)
	require.Equal(t, "ping", blocks[1].Name)

	toolTurn := request.Messages[2]
	require.Equal(t, "user", toolTurn.Role)
	resultBlocks := toolTurn.Content.([]contentBlock)
	require.Len(t, resultBlocks, 1)
	require.Equal(t, "tool_result", resultBlocks[0].Type)
	require.Equal(t, "call_1", resultBlocks[0].ToolUseId)
	require.Equal(t, "pong", resultBlocks[0].Content)
}

func TestParseResponseToolUse(t *testing.T) {
	a := &Adaptor{}
	result, err := a.ParseResponse([]byte(`{
		"content": [
			{"type": "text", "text": "let me check"},
			{"type": "tool_use", "id": "toolu_1", "name": "ping", "input": {"host": "x"}}
		],
		"stop_reason": "tool_use",
		"usage": {"input_tokens": 10, "output_tokens": 4}
	}`))
	require.NoError(t, err)
	require.Equal(t, "let me check", result.Content)
	require.Len(t, result.ToolCalls, 1)
	require.Equal(t, "toolu_1", result.ToolCalls[0].Id)
	require.Equal(t, "ping", result.ToolCalls[0].Function.Name)
	require.JSONEq(t, `{"host":"x"}`, result.ToolCalls[0].Function.Arguments)
	require.Equal(t, 14, result.Usage.TotalTokens)
}

func TestParseResponseError(t *testing.T) {
	a := &Adaptor{}
	_, err := a.ParseResponse([]byte(`{"error":{"type":"overloaded_error","message":"try later"}}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "try later")
}
