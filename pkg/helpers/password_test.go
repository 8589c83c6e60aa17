package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashDeterministic(t *testing.T) {
	h := NewPasswordHasher("somesalt")
	assert.Equal(t, h.Hash("secret123"), h.Hash("secret123"),
		"hashing must be deterministic so credential checks can run as SQL equality")
}

func TestPasswordHashDiffersByPassword(t *testing.T) {
	h := NewPasswordHasher("somesalt")
	assert.NotEqual(t, h.Hash("secret123"), h.Hash("secret124"))
}

func TestPasswordHashDiffersBySalt(t *testing.T) {
	a := NewPasswordHasher("salt-a")
	b := NewPasswordHasher("salt-b")
	assert.NotEqual(t, a.Hash("secret123"), b.Hash("secret123"))
}

func TestPasswordHashIsHexEncoded(t *testing.T) {
	h := NewPasswordHasher("somesalt")
	out := h.Hash("secret123")
	assert.Len(t, out, 64) // 32 bytes hex encoded
}
