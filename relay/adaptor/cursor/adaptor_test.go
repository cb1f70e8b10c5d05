package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/mcp-chat/common/config"
)

func TestGetRequestURLPinsV1(t *testing.T) {
	a := &Adaptor{}

	url, err := a.GetRequestURL(&config.ProviderOption{BaseURL: "https://api.cursor.com"})
	require.NoError(t, err)
	require.Equal(t, "https://api.cursor.com/v1/chat/completions", url)

	url, err = a.GetRequestURL(&config.ProviderOption{BaseURL: "https://api.cursor.com/v1/"})
	require.NoError(t, err)
	require.Equal(t, "https://api.cursor.com/v1/chat/completions", url)
}
