// Package model holds the persisted connection registry and its storage
// lifecycle.
package model

import (
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
)

// Sentinel errors surfaced by the connection store.
var (
	// ErrDuplicateURL is returned when a connection with the same URL is
	// already registered.
	ErrDuplicateURL = errors.New("a connection with the same url already exists")
	// ErrConnectionNotFound is returned when no connection matches the
	// requested id.
	ErrConnectionNotFound = errors.New("connection not found")
)

// Connection is a registered external tool-provider endpoint. Tools are never
// persisted with it; they are rediscovered on demand.
type Connection struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ConnectionUpdate carries the mutable fields of a connection. Nil fields are
// left untouched.
type ConnectionUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// NormalizeConnectionURL trims whitespace and the trailing slash so stored
// URLs are directly usable as request bases.
func NormalizeConnectionURL(rawURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
}
