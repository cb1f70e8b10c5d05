package openai

import (
	"net/http"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/relay/adaptor/openai_compatible"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

type Adaptor struct{}

func (a *Adaptor) GetChannelName() string {
	return "openai"
}

func (a *Adaptor) GetRequestURL(option *config.ProviderOption) (string, error) {
	return openai_compatible.GetFullRequestURL(option.BaseURL), nil
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
