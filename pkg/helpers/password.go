package helpers

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2Iterations = 210_000

// PasswordHasher derives deterministic password hashes with PBKDF2-SHA256
// and a deployment-wide salt. Determinism lets credential checks run as a
// plain equality inside the login query instead of a fetch-then-compare.
type PasswordHasher struct {
	salt []byte
}

func NewPasswordHasher(salt string) *PasswordHasher {
	return &PasswordHasher{salt: []byte(salt)}
}

func (h *PasswordHasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.salt, pbkdf2Iterations, 32, sha256.New)
	return hex.EncodeToString(key)
}
