package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/dchest/uniuri"
)

const (
	keyPrefix    = "AG"
	keySeperator = "."
)

// DigestAPIKey computes the fixed-length digest an api key is stored
// and looked up under. Deterministic so the digest itself can be the
// lookup key.
func DigestAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey returns the key's mask id and the full plaintext key.
// The plaintext is shown to the caller exactly once; only its digest is
// stored.
func GenerateAPIKey() (string, string) {
	mask := uniuri.NewLen(16)
	key := uniuri.NewLen(64)

	var apiKey strings.Builder

	apiKey.WriteString(keyPrefix)
	apiKey.WriteString(keySeperator)
	apiKey.WriteString(mask)
	apiKey.WriteString(keySeperator)
	apiKey.WriteString(key)

	return mask, apiKey.String()
}

func GenerateSecret() string {
	return uniuri.NewLen(32)
}
