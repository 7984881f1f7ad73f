// fightclub/auth/passwords.go
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fightclub/config"
)

// HashPassword derives a bcrypt digest from a plaintext password. The
// plaintext is never logged or returned.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest. A
// malformed digest verifies false rather than erroring; bcrypt's own
// comparison is constant-time.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
