// Package mcp implements the tool-connection protocol: catalog discovery,
// function-calling schema translation, and tool dispatch.
package mcp

import (
	"fmt"

	"github.com/Laisky/errors/v2"
)

// ParameterType enumerates the JSON types a tool parameter may declare.
type ParameterType string

// Accepted parameter types.
const (
	ParameterTypeString  ParameterType = "string"
	ParameterTypeNumber  ParameterType = "number"
	ParameterTypeBoolean ParameterType = "boolean"
	ParameterTypeArray   ParameterType = "array"
	ParameterTypeObject  ParameterType = "object"
)

// Valid reports whether the parameter type is one of the accepted variants.
func (t ParameterType) Valid() bool {
	switch t {
	case ParameterTypeString, ParameterTypeNumber, ParameterTypeBoolean,
		ParameterTypeArray, ParameterTypeObject:
		return true
	default:
		return false
	}
}

// Matches reports whether a decoded JSON value conforms to the declared type.
func (t ParameterType) Matches(value any) bool {
	if value == nil {
		return true
	}
	switch t {
	case ParameterTypeString:
		_, ok := value.(string)
		return ok
	case ParameterTypeNumber:
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case ParameterTypeBoolean:
		_, ok := value.(bool)
		return ok
	case ParameterTypeArray:
		_, ok := value.([]any)
		return ok
	case ParameterTypeObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return false
	}
}

// ParameterSpec describes one declared tool parameter.
type ParameterSpec struct {
	Type        ParameterType `json:"type"`
	Description string        `json:"description"`
	Required    bool          `json:"required"`
	Default     any           `json:"default,omitempty"`
}

// Tool is a capability discovered from a connection's catalog. Tools are
// never persisted; every read re-runs discovery.
type Tool struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  map[string]ParameterSpec `json:"parameters,omitempty"`
	Examples    []string                 `json:"examples,omitempty"`
}

// ErrToolNotFound is returned when no connection's catalog contains the
// requested tool name.
var ErrToolNotFound = errors.New("tool not found")

// ToolExecutionError carries the upstream status and body of a failed tool
// invocation.
type ToolExecutionError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool execution failed with status %d: %s", e.StatusCode, e.Body)
}
