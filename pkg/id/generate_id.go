package id

import (
	"strings"

	"github.com/google/uuid"
)

// Len is the length of every id minted by NewID32.
const Len = 32

// NewID32 returns a random v4 uuid as 32 lowercase hex chars.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Valid reports whether s has the NewID32 shape. Uppercase is rejected.
func Valid(s string) bool {
	if len(s) != Len {
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
