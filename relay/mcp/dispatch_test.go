package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/mcp-chat/model"
)

// newToolServer serves a catalog plus canned per-tool responses.
func newToolServer(t *testing.T, catalog string, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/list_tools" {
			w.Write([]byte(catalog))
			return
		}
		if body, ok := responses[r.URL.Path]; ok {
			w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func newDispatchFixture(t *testing.T) (*model.ConnectionStore, *Dispatcher) {
	t.Helper()
	store, err := model.NewConnectionStore(filepath.Join(t.TempDir(), "connections.json"))
	require.NoError(t, err)
	return store, NewDispatcher(store, newTestClient())
}

func TestDispatchFirstMatchWins(t *testing.T) {
	first := newToolServer(t, `{"tools":[{"name":"x"}]}`, map[string]string{
		"/x": `{"result":{"data":{"message":"from-first"}}}`,
	})
	defer first.Close()
	second := newToolServer(t, `{"tools":[{"name":"x"}]}`, map[string]string{
		"/x": `{"result":{"data":{"message":"from-second"}}}`,
	})
	defer second.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("first", "", first.URL)
	require.NoError(t, err)
	_, err = store.Add("second", "", second.URL)
	require.NoError(t, err)

	// deterministic across repeated dispatches
	for range 3 {
		result, err := dispatcher.Dispatch(context.Background(), "x", nil)
		require.NoError(t, err)
		require.Equal(t, "from-first", result.Result)
		require.Equal(t, "first", result.Connection.Name)
	}
}

func TestDispatchSkipsConnectionsWithoutTool(t *testing.T) {
	without := newToolServer(t, `{"tools":[{"name":"other"}]}`, nil)
	defer without.Close()
	with := newToolServer(t, `{"tools":[{"name":"ping"}]}`, map[string]string{
		"/ping": `{"result":{"data":{"message":"pong"}}}`,
	})
	defer with.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("without", "", without.URL)
	require.NoError(t, err)
	_, err = store.Add("with", "", with.URL)
	require.NoError(t, err)

	result, err := dispatcher.Dispatch(context.Background(), "ping", nil)
	require.NoError(t, err)
	require.Equal(t, "pong", result.Result)
	require.Equal(t, "with", result.Connection.Name)
}

func TestDispatchToolNotFound(t *testing.T) {
	server := newToolServer(t, `{"tools":[{"name":"other"}]}`, nil)
	defer server.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("svc", "", server.URL)
	require.NoError(t, err)

	_, err = dispatcher.Dispatch(context.Background(), "missing", nil)
	require.True(t, errors.Is(err, ErrToolNotFound))
}

func TestDispatchNoConnections(t *testing.T) {
	_, dispatcher := newDispatchFixture(t)

	_, err := dispatcher.Dispatch(context.Background(), "anything", nil)
	require.True(t, errors.Is(err, ErrToolNotFound))
}

func TestDispatchArgumentTypeMismatch(t *testing.T) {
	server := newToolServer(t,
		`{"tools":[{"name":"lookup","parameters":{"count":{"type":"number"}}}]}`, nil)
	defer server.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("svc", "", server.URL)
	require.NoError(t, err)

	_, err = dispatcher.Dispatch(context.Background(), "lookup", map[string]any{"count": "three"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "count")
}

func TestDispatchPropagatesExecutionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/list_tools" {
			w.Write([]byte(`{"tools":[{"name":"boom"}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("kaboom"))
	}))
	defer server.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("svc", "", server.URL)
	require.NoError(t, err)

	_, err = dispatcher.Dispatch(context.Background(), "boom", nil)
	require.Error(t, err)

	var execErr *ToolExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, http.StatusInternalServerError, execErr.StatusCode)
}

func TestAggregateTools(t *testing.T) {
	a := newToolServer(t, `{"tools":[{"name":"a1"},{"name":"a2"}]}`, nil)
	defer a.Close()
	b := newToolServer(t, `{"tools":[{"name":"b1"}]}`, nil)
	defer b.Close()

	store, dispatcher := newDispatchFixture(t)
	_, err := store.Add("a", "", a.URL)
	require.NoError(t, err)
	_, err = store.Add("b", "", b.URL)
	require.NoError(t, err)

	tools := dispatcher.AggregateTools(context.Background())
	require.Len(t, tools, 3)
	require.Equal(t, "a1", tools[0].Name)
	require.Equal(t, "b1", tools[2].Name)
}
