// Package model defines the wire types shared between the chat orchestrator
// and the provider adaptors.
package model

// Message is one chat turn. Tool results always carry string content;
// provider APIs reject non-string content on tool-role turns.
type Message struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	ToolCalls  []Tool `json:"tool_calls,omitempty"`
	ToolCallId string `json:"tool_call_id,omitempty"`
}

// Roles accepted in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// IsConversationRole reports whether the role belongs in a provider-facing
// conversation history (tool turns are appended separately during the
// resolve round).
func IsConversationRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}
