// Package helper contains small shared helpers for HTTP handlers.
package helper

import (
	"fmt"
	"time"

	"github.com/Laisky/mcp-chat/common/random"
)

const (
	// RequestIdKey stores the gin context key used to persist the current
	// request identifier.
	RequestIdKey = "X-Mcpchat-Request-Id"
)

// MessageWithRequestId appends the request id to a user-facing message so
// failures can be correlated with server logs.
func MessageWithRequestId(message string, id string) string {
	if id == "" {
		return message
	}
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

// GenerateConnectionID builds a collision-resistant connection identifier
// combining the current timestamp with a random base36 suffix.
func GenerateConnectionID() string {
	return fmt.Sprintf("mcp_%d_%s", time.Now().UnixMilli(), random.GetRandomString(9))
}
