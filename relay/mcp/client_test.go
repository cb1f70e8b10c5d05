package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/mcp-chat/common/logger"
)

func newTestClient() *Client {
	return &Client{
		HTTPClient:       http.DefaultClient,
		DiscoveryTimeout: 2 * time.Second,
		CallTimeout:      2 * time.Second,
		Logger:           logger.Logger.Named("test"),
	}
}

func TestDiscoverFlatShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/list_tools", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"tools":[{"name":"ping","description":"liveness probe"}]}`))
	}))
	defer server.Close()

	tools := newTestClient().Discover(context.Background(), server.URL)
	require.Len(t, tools, 1)
	require.Equal(t, "ping", tools[0].Name)
	require.Equal(t, "liveness probe", tools[0].Description)
}

func TestDiscoverNestedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":{"tools":[{"name":"ping"},{"name":"echo"}]}}}`))
	}))
	defer server.Close()

	tools := newTestClient().Discover(context.Background(), server.URL)
	require.Len(t, tools, 2)
	require.Equal(t, "ping", tools[0].Name)
	require.Equal(t, "echo", tools[1].Name)
}

func TestDiscoverShapeEquivalence(t *testing.T) {
	flat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tools":[{"name":"ping","parameters":{"host":{"type":"string","required":true}}}]}`))
	}))
	defer flat.Close()
	nested := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":{"tools":[{"name":"ping","parameters":{"host":{"type":"string","required":true}}}]}}}`))
	}))
	defer nested.Close()

	client := newTestClient()
	fromFlat := client.Discover(context.Background(), flat.URL)
	fromNested := client.Discover(context.Background(), nested.URL)
	require.Equal(t, fromFlat, fromNested)
}

func TestDiscoverUnreachableReturnsEmpty(t *testing.T) {
	tools := newTestClient().Discover(context.Background(), "http://127.0.0.1:1")
	require.Empty(t, tools)
}

func TestDiscoverStrictSurfacesFailures(t *testing.T) {
	client := newTestClient()

	_, err := client.DiscoverStrict(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err = client.DiscoverStrict(context.Background(), server.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 503")
}

func TestDiscoverStrictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tools":[{"name":"ping"}]}`))
	}))
	defer server.Close()

	tools, err := newTestClient().DiscoverStrict(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "ping", tools[0].Name)
}

func TestDiscoverMalformedBodyReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	require.Empty(t, newTestClient().Discover(context.Background(), server.URL))
}

func TestDiscoverNon2xxReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	require.Empty(t, newTestClient().Discover(context.Background(), server.URL))
}

func TestCallToolMessageExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ping", r.URL.Path)
		w.Write([]byte(`{"result":{"data":{"message":"pong"}}}`))
	}))
	defer server.Close()

	result, err := newTestClient().CallTool(context.Background(), server.URL, "ping")
	require.NoError(t, err)
	require.Equal(t, "pong", result)
}

func TestCallToolBalanceExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":{"balance":42.5}}}`))
	}))
	defer server.Close()

	result, err := newTestClient().CallTool(context.Background(), server.URL, "balance")
	require.NoError(t, err)
	require.Equal(t, "42.5", result)
}

func TestCallToolDataFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":{"rows":[1,2,3]}}}`))
	}))
	defer server.Close()

	result, err := newTestClient().CallTool(context.Background(), server.URL, "query")
	require.NoError(t, err)
	require.JSONEq(t, `{"rows":[1,2,3]}`, result)
}

func TestCallToolStringData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":"done"}}`))
	}))
	defer server.Close()

	result, err := newTestClient().CallTool(context.Background(), server.URL, "job")
	require.NoError(t, err)
	require.Equal(t, "done", result)
}

func TestCallToolGenericConfirmation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	result, err := newTestClient().CallTool(context.Background(), server.URL, "fire")
	require.NoError(t, err)
	require.Equal(t, "tool executed successfully", result)
}

func TestCallToolUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestClient().CallTool(context.Background(), server.URL, "ping")
	require.Error(t, err)

	var execErr *ToolExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, http.StatusBadGateway, execErr.StatusCode)
	require.Contains(t, execErr.Body, "upstream exploded")
}
