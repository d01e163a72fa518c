// Package token generates opaque unsubscribe tokens. A token is the sole
// credential for self-service unsubscribe, so it must be unguessable:
// 32 bytes from crypto/rand, base64url without padding.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const byteLength = 32

func New() (string, error) {
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
