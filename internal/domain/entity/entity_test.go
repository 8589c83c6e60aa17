package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	live := &Session{ExpiresAt: now.Add(time.Minute)}
	dead := &Session{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, live.Expired(now))
	assert.True(t, dead.Expired(now))
}

func TestCodeUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	fresh := &Code{Purpose: CodePurposePasswordReset, ExpiresAt: &future}
	assert.True(t, fresh.Usable(CodePurposePasswordReset, now))
	assert.False(t, fresh.Usable(CodePurposeEmailVerification, now), "purpose must match")

	used := &Code{Purpose: CodePurposePasswordReset, UsedAt: &past}
	assert.False(t, used.Usable(CodePurposePasswordReset, now))

	expired := &Code{Purpose: CodePurposePasswordReset, ExpiresAt: &past}
	assert.False(t, expired.Usable(CodePurposePasswordReset, now))

	noExpiry := &Code{Purpose: CodePurposeEmailVerification}
	assert.True(t, noExpiry.Usable(CodePurposeEmailVerification, now))
}

func TestCodeExpiredIgnoresUsedAt(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Second)
	future := now.Add(time.Hour)

	// a just-redeemed code is not expired even though it is no longer usable
	c := &Code{Purpose: CodePurposePasswordReset, UsedAt: &used, ExpiresAt: &future}
	assert.False(t, c.Expired(now))

	past := now.Add(-time.Hour)
	c.ExpiresAt = &past
	assert.True(t, c.Expired(now))
}

func TestUserIsAdmin(t *testing.T) {
	assert.False(t, (&User{AdminLevel: 0}).IsAdmin())
	assert.True(t, (&User{AdminLevel: 1}).IsAdmin())
	assert.True(t, (&User{AdminLevel: 5}).IsAdmin())
}

func TestAssetTypeValid(t *testing.T) {
	for _, at := range AssetTypes {
		assert.True(t, at.Valid(), string(at))
	}
	assert.False(t, AssetType("helmet").Valid())
	assert.False(t, AssetType("").Valid())
}
