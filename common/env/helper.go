// Package env provides typed helpers for reading environment variables.
package env

import (
	"os"
	"strconv"
	"strings"
)

// Bool reads a boolean environment variable, falling back to defaultValue
// when unset or malformed.
func Bool(env string, defaultValue bool) bool {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(env)))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Int reads an integer environment variable, falling back to defaultValue
// when unset or malformed.
func Int(env string, defaultValue int) int {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(os.Getenv(env)))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// String reads a string environment variable, falling back to defaultValue
// when unset or blank.
func String(env string, defaultValue string) string {
	if env == "" {
		return defaultValue
	}
	value := strings.TrimSpace(os.Getenv(env))
	if value == "" {
		return defaultValue
	}
	return value
}
