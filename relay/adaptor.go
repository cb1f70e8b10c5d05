package relay

import (
	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/relay/adaptor"
	"github.com/Laisky/mcp-chat/relay/adaptor/anthropic"
	"github.com/Laisky/mcp-chat/relay/adaptor/cursor"
	"github.com/Laisky/mcp-chat/relay/adaptor/deepseek"
	"github.com/Laisky/mcp-chat/relay/adaptor/openai"
)

// GetAdaptor returns the adaptor for the given provider identifier, or
// nil when the provider is unknown.
func GetAdaptor(provider string) adaptor.Adaptor {
	switch provider {
	case config.ProviderCursor:
		return &cursor.Adaptor{}
	case config.ProviderDeepSeek:
		return &deepseek.Adaptor{}
	case config.ProviderOpenAI:
		return &openai.Adaptor{}
	case config.ProviderAnthropic:
		return &anthropic.Adaptor{}
	}
	return nil
}
