// internal/operator/guard.go
package operator

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Guard holds the salted Argon2id digest of the operator credential that
// protects the manual stock-correction surface.
type Guard struct {
	salt []byte
	hash []byte
}

// NewGuard derives a guard from the configured operator password.
func NewGuard(password string) (*Guard, error) {
	if password == "" {
		return nil, fmt.Errorf("operator password must not be empty")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return &Guard{salt: salt, hash: hash}, nil
}

// Verify reports whether the presented password matches the guarded one.
func (g *Guard) Verify(password string) bool {
	candidate := argon2.IDKey([]byte(password), g.salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(candidate, g.hash) == 1
}
