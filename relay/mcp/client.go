package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/mcp-chat/common/client"
	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/common/logger"
	"github.com/Laisky/mcp-chat/common/metrics"
)

// Client talks to MCP tool servers over plain HTTP. Discovery and tool
// invocation are both GET based; the servers in the wild ignore request
// bodies entirely, so arguments never travel on the wire.
type Client struct {
	HTTPClient       *http.Client
	DiscoveryTimeout time.Duration
	CallTimeout      time.Duration
	Logger           glog.Logger
}

// NewClient builds a Client with timeouts taken from configuration.
func NewClient() *Client {
	return &Client{
		HTTPClient:       client.ToolHTTPClient,
		DiscoveryTimeout: time.Duration(config.DiscoveryTimeoutSec) * time.Second,
		CallTimeout:      time.Duration(config.ToolCallTimeoutSec) * time.Second,
		Logger:           logger.Logger.Named("mcp_client"),
	}
}

// listToolsEnvelope covers both response shapes seen from tool servers:
// a flat {"tools": [...]} object and the JSON-RPC style
// {"result": {"data": {"tools": [...]}}} nesting.
type listToolsEnvelope struct {
	Tools  []Tool `json:"tools"`
	Result *struct {
		Data struct {
			Tools []Tool `json:"tools"`
		} `json:"data"`
	} `json:"result"`
}

// DiscoverStrict fetches the tool list from baseURL and surfaces
// transport, status, and decoding failures to the caller. Most call
// sites want Discover instead, which degrades to an empty catalog.
func (c *Client) DiscoverStrict(ctx context.Context, baseURL string) ([]Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.DiscoveryTimeout)
	defer cancel()

	endpoint := strings.TrimSuffix(baseURL, "/") + "/list_tools"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.RecordDiscovery(false, 0)
		return nil, errors.Wrapf(err, "build discovery request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordDiscovery(false, 0)
		return nil, errors.Wrapf(err, "discover tools from %s", endpoint)
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordDiscovery(false, 0)
		return nil, errors.Errorf("discovery against %s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordDiscovery(false, 0)
		return nil, errors.Wrapf(err, "read discovery response from %s", endpoint)
	}

	var envelope listToolsEnvelope
	if err = json.Unmarshal(body, &envelope); err != nil {
		metrics.RecordDiscovery(false, 0)
		return nil, errors.Wrapf(err, "decode discovery response from %s", endpoint)
	}

	tools := envelope.Tools
	if len(tools) == 0 && envelope.Result != nil {
		tools = envelope.Result.Data.Tools
	}

	c.Logger.Debug("discovered tools",
		zap.String("url", baseURL),
		zap.Int("count", len(tools)))
	metrics.RecordDiscovery(true, len(tools))
	return tools, nil
}

// Discover fetches the tool list from baseURL. A server that is down,
// slow, or returns garbage simply contributes zero tools; discovery
// never fails the caller.
func (c *Client) Discover(ctx context.Context, baseURL string) []Tool {
	tools, err := c.DiscoverStrict(ctx, baseURL)
	if err != nil {
		c.Logger.Debug("discovery degraded to empty catalog",
			zap.String("url", baseURL), zap.Error(err))
		return nil
	}
	return tools
}

// callResultEnvelope mirrors the invocation response shape. Data stays
// raw so string, number, and object payloads can all be unwrapped.
type callResultEnvelope struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
}

// CallTool invokes toolName on the server at baseURL and returns a
// human-readable result string. Arguments are validated upstream but
// never transmitted; the servers expose argument-less GET endpoints.
func (c *Client) CallTool(ctx context.Context, baseURL, toolName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.CallTimeout)
	defer cancel()

	endpoint := strings.TrimSuffix(baseURL, "/") + "/" + toolName
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrapf(err, "build tool request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "call tool %s", toolName)
	}
	defer resp.Body.Close() // nolint: errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "read tool response for %s", toolName)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ToolExecutionError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return extractToolResult(body), nil
}

// extractToolResult unwraps the invocation envelope, preferring
// result.data.message, then result.data.balance, then result.data
// itself, then a generic confirmation.
func extractToolResult(body []byte) string {
	var envelope callResultEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Result == nil || len(envelope.Result.Data) == 0 {
		return "tool executed successfully"
	}

	data := envelope.Result.Data

	var fields struct {
		Message *json.RawMessage `json:"message"`
		Balance *json.RawMessage `json:"balance"`
	}
	if err := json.Unmarshal(data, &fields); err == nil {
		if fields.Message != nil {
			return rawToString(*fields.Message)
		}
		if fields.Balance != nil {
			return rawToString(*fields.Balance)
		}
	}

	return rawToString(data)
}

// rawToString renders a JSON value as plain text: strings lose their
// quotes, everything else keeps its compact JSON form.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return string(raw)
}
