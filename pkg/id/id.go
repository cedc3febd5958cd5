// Package id generates the opaque identifiers used for notifications and
// accepted as idempotency keys.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

const hexLen = 32

// NewID32 returns 32 lowercase hex characters drawn from crypto/rand.
func NewID32() string {
	b := make([]byte, hexLen/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid32 reports whether s has the NewID32 shape.
func Valid32(s string) bool {
	if len(s) != hexLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
