package deepseek

import (
	"net/http"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/relay/adaptor/openai_compatible"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

// Adaptor speaks DeepSeek's OpenAI-compatible chat API.
type Adaptor struct{}

func (a *Adaptor) GetChannelName() string {
	return "deepseek"
}

func (a *Adaptor) GetRequestURL(option *config.ProviderOption) (string, error) {
	return openai_compatible.GetFullRequestURL(option.BaseURL), nil
}

func (a *Adaptor) SetupRequestHeader(req *http.Request, option *config.ProviderOption) error {
	req.Header.Set("Authorization", "Bearer "+option.APIKey)
	return nil
}

// ConvertRequest passes the request through unchanged. DeepSeek rejects
// non-string tool message content, but the orchestrator only ever emits
// string tool results, so no normalization pass is needed here.
func (a *Adaptor) ConvertRequest(request *relaymodel.GeneralOpenAIRequest) (any, error) {
	return request, nil
}

func (a *Adaptor) ParseResponse(body []byte) (*relaymodel.ChatResult, error) {
	return openai_compatible.ParseChatResponse(body)
}
