// Package cursor adapts the Cursor API, which exposes OpenAI-style
// chat completions under /v1/chat/completions only.
package cursor

import (
	"net/http"
	"strings"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/relay/adaptor/openai_compatible"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

type Adaptor struct{}

func (a *Adaptor) GetChannelName() string {
	return "cursor"
}

// GetRequestURL pins the chat completions path under /v1 regardless of
// how the configured base URL is written. Cursor serves no alternate
// chat endpoints, so there is nothing to probe for.
func (a *Adaptor) GetRequestURL(option *config.ProviderOption) (string, error) {
	base := strings.TrimSuffix(option.BaseURL, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base + openai_compatible.ChatCompletionsPath, nil
}

func (a *Adaptor) SetupRequestHeader(req *http.Request, option *config.ProviderOption) error {
	req.Header.Set("Authorization", "Bearer "+option.APIKey)
	return nil
}

func (a *Adaptor) ConvertRequest(request *relaymodel.GeneralOpenAIRequest) (any, error) {
	return request, nil
}

func (a *Adaptor) ParseResponse(body []byte) (*relaymodel.ChatResult, error) {
	return openai_compatible.ParseChatResponse(body)
}
