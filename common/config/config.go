// Package config holds process-wide configuration resolved from the
// environment at startup.
package config

import (
	"strings"

	"github.com/Laisky/mcp-chat/common/env"
)

// Provider identifiers accepted by AI_PROVIDER.
const (
	ProviderCursor    = "cursor"
	ProviderDeepSeek  = "deepseek"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ProviderOption describes a single upstream AI provider.
type ProviderOption struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Models       []string
}

var (
	// DebugEnabled switches gin into debug mode and raises log verbosity.
	DebugEnabled = env.Bool("DEBUG", false)

	// Host and Port control the listen address of the HTTP server.
	Host = env.String("HOST", "localhost")
	Port = env.Int("PORT", 8787)

	// AIProvider selects which upstream adaptor serves chat completions.
	AIProvider = strings.ToLower(env.String("AI_PROVIDER", ProviderDeepSeek))

	// Providers holds per-provider credentials and endpoints.
	Providers = map[string]*ProviderOption{
		ProviderCursor: {
			APIKey:       env.String("CURSOR_API_KEY", ""),
			BaseURL:      env.String("CURSOR_API_URL", "https://api.cursor.com/v1"),
			DefaultModel: "claude-3.5-sonnet",
			Models:       []string{"claude-3.5-sonnet", "gpt-4o", "gpt-4o-mini", "claude-3.5-haiku"},
		},
		ProviderDeepSeek: {
			APIKey:       env.String("DEEPSEEK_API_KEY", ""),
			BaseURL:      env.String("DEEPSEEK_API_URL", "https://api.deepseek.com/v1"),
			DefaultModel: "deepseek-chat",
			Models:       []string{"deepseek-chat", "deepseek-coder"},
		},
		ProviderOpenAI: {
			APIKey:       env.String("OPENAI_API_KEY", ""),
			BaseURL:      env.String("OPENAI_API_URL", "https://api.openai.com/v1"),
			DefaultModel: "gpt-3.5-turbo",
			Models:       []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"},
		},
		ProviderAnthropic: {
			APIKey:       env.String("ANTHROPIC_API_KEY", ""),
			BaseURL:      env.String("ANTHROPIC_API_URL", "https://api.anthropic.com/v1"),
			DefaultModel: "claude-3-sonnet-20240229",
			Models:       []string{"claude-3-sonnet", "claude-3-haiku", "claude-3-opus"},
		},
	}

	// RelayTimeout bounds a single upstream provider call, in seconds.
	// Zero disables the client timeout.
	RelayTimeout = env.Int("RELAY_TIMEOUT", 120)

	// DiscoveryTimeoutSec bounds a single /list_tools probe against a tool
	// connection.
	DiscoveryTimeoutSec = env.Int("MCP_DISCOVERY_TIMEOUT", 10)

	// ToolCallTimeoutSec bounds a single tool invocation request.
	ToolCallTimeoutSec = env.Int("MCP_TOOL_CALL_TIMEOUT", 15)

	// ConnectionStorageFile is the JSON snapshot holding registered tool
	// connections.
	ConnectionStorageFile = env.String("MCP_STORAGE_FILE", "data/mcp-connections.json")

	// BlockInternalToolEndpoints rejects connection URLs resolving to private
	// address space. Off by default so local tool servers keep working.
	BlockInternalToolEndpoints = env.Bool("BLOCK_INTERNAL_TOOL_ENDPOINTS", false)

	// OpenTelemetryEnabled turns on OTLP trace and metric export.
	OpenTelemetryEnabled = env.Bool("OTEL_ENABLED", false)
	// OpenTelemetryEndpoint is the OTLP HTTP collector endpoint.
	OpenTelemetryEndpoint = env.String("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	// OpenTelemetryInsecure disables TLS towards the OTLP collector.
	OpenTelemetryInsecure = env.Bool("OTEL_EXPORTER_OTLP_INSECURE", false)
	// OpenTelemetryServiceName identifies this process in exported telemetry.
	OpenTelemetryServiceName = env.String("OTEL_SERVICE_NAME", "mcp-chat")

	// MetricsEnabled exposes the prometheus /metrics endpoint.
	MetricsEnabled = env.Bool("ENABLE_METRICS", true)
)

// SelectedProvider returns the configured provider option, or nil when the
// AI_PROVIDER value is unknown.
func SelectedProvider() *ProviderOption {
	return Providers[AIProvider]
}

// ValidateProviderConfig reports configuration problems for the selected
// provider. Missing keys are warnings, not fatal: the chat surface degrades
// with a structured error instead of refusing to boot.
func ValidateProviderConfig() []string {
	var problems []string
	option := SelectedProvider()
	if option == nil {
		problems = append(problems, "unknown AI_PROVIDER: "+AIProvider)
		return problems
	}
	if option.APIKey == "" {
		problems = append(problems, "API key for provider "+AIProvider+" is not set")
	}
	return problems
}
