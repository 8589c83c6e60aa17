package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenMintUnique(t *testing.T) {
	m := NewSessionTokenMinter("secret")
	exp := time.Now().Add(time.Hour)

	a, err := m.Mint(1, exp)
	require.NoError(t, err)
	b, err := m.Mint(1, exp)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "each mint must produce a distinct token")
}

func TestSessionTokenCarriesClaims(t *testing.T) {
	m := NewSessionTokenMinter("secret")
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tok, err := m.Mint(42, exp)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, float64(exp.Unix()), claims["exp"])
	assert.NotEmpty(t, claims["jti"])
}
