package entity

import "time"

// CodePurpose enumerates what a one-time code is for.
type CodePurpose string

const (
	CodePurposeEmailVerification CodePurpose = "email_verification"
	CodePurposePasswordReset     CodePurpose = "password_reset"
)

// Code is a one-time code row. UsedAt and ExpiresAt are nullable in the
// schema; a nil UsedAt means the code has not been redeemed.
type Code struct {
	ID        int64
	UserID    int64
	Purpose   CodePurpose
	Code      string
	CreatedAt time.Time
	UsedAt    *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the code's expiry, if any, has passed.
func (c *Code) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Usable reports whether the code can still be redeemed for the given purpose.
func (c *Code) Usable(purpose CodePurpose, now time.Time) bool {
	if c.Purpose != purpose || c.UsedAt != nil {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}
