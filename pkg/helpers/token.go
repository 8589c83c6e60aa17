package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenMinter produces opaque session tokens. Tokens are signed JWTs
// so they are self-describing on the wire, but authorization always goes
// through the sessions table; the signature only guards against guessable
// token strings.
type SessionTokenMinter struct {
	secret []byte
}

func NewSessionTokenMinter(secret string) *SessionTokenMinter {
	return &SessionTokenMinter{secret: []byte(secret)}
}

func (m *SessionTokenMinter) Mint(userID int64, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
