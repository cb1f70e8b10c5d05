// Package adaptor defines the interface every upstream AI provider
// implements, plus the shared request helper the orchestrator calls
// through.
package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/mcp-chat/common/client"
	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/common/metrics"
	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

// Adaptor converts the provider-agnostic chat request into one
// provider's native API and normalizes the response back.
type Adaptor interface {
	GetChannelName() string
	GetRequestURL(option *config.ProviderOption) (string, error)
	SetupRequestHeader(req *http.Request, option *config.ProviderOption) error
	ConvertRequest(request *relaymodel.GeneralOpenAIRequest) (any, error)
	ParseResponse(body []byte) (*relaymodel.ChatResult, error)
}

// DoRequest runs the full convert/send/parse cycle for one chat
// completion against the given provider.
func DoRequest(ctx context.Context, a Adaptor, option *config.ProviderOption, request *relaymodel.GeneralOpenAIRequest) (*relaymodel.ChatResult, error) {
	start := time.Now()

	converted, err := a.ConvertRequest(request)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "convert request")
	}

	payload, err := json.Marshal(converted)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "marshal request")
	}

	url, err := a.GetRequestURL(option)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "build request url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if err = a.SetupRequestHeader(req, option); err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "setup request header")
	}

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrapf(err, "call provider %s", a.GetChannelName())
	}
	defer resp.Body.Close() // nolint: errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Errorf("provider %s returned status %d: %s",
			a.GetChannelName(), resp.StatusCode, truncateBody(body))
	}

	result, err := a.ParseResponse(body)
	if err != nil {
		metrics.RecordProviderCall(start, a.GetChannelName(), false)
		return nil, errors.Wrap(err, "parse provider response")
	}

	metrics.RecordProviderCall(start, a.GetChannelName(), true)
	return result, nil
}

// truncateBody keeps error messages readable when a provider returns a
// large error payload.
func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
