// Package random provides identifier and token generation helpers.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// GetUUID returns a random 128-bit identifier encoded as 32 hex characters.
func GetUUID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// GetRandomString returns a random base36 string of the given length.
func GetRandomString(length int) string {
	if length <= 0 {
		return ""
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(base36Chars)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = base36Chars[0]
			continue
		}
		out[i] = base36Chars[idx.Int64()]
	}
	return string(out)
}
