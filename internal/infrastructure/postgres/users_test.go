package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "created_at",
		"email_verified", "blocked", "admin_level", "last_login",
	})
}

func TestUserStoreCreate(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@b.c", "hash").
		WillReturnRows(userRows().AddRow(int64(1), "a@b.c", "hash", now, false, false, 0, now))

	u, err := NewUserStore(mock).Create(context.Background(), "a@b.c", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "a@b.c", u.Email)
	assert.False(t, u.EmailVerified)
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@b.c", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := NewUserStore(mock).Create(context.Background(), "a@b.c", "hash")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUserStoreGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserStore(mock).GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreVerifyPasswordRejectsBadCredentials(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("a@b.c", "wronghash").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserStore(mock).VerifyPassword(context.Background(), "a@b.c", "wronghash")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserStoreVerifyPasswordMatch(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("a@b.c", "hash").
		WillReturnRows(userRows().AddRow(int64(7), "a@b.c", "hash", now, true, false, 0, now))

	u, err := NewUserStore(mock).VerifyPassword(context.Background(), "a@b.c", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
}

func TestUserStoreSetBlocked(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`UPDATE users SET blocked`).
		WithArgs(int64(7), true).
		WillReturnRows(userRows().AddRow(int64(7), "a@b.c", "hash", now, true, true, 0, now))

	u, err := NewUserStore(mock).SetBlocked(context.Background(), 7, true)
	require.NoError(t, err)
	assert.True(t, u.Blocked)
}
