package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charcreator/backend/internal/domain/entity"
)

func sessionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "token", "created_at", "last_used", "expires_at"})
}

func TestSessionStoreGetTouchUpdatesLastUsed(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	// touch mode runs the read and the last_used stamp as one UPDATE
	mock.ExpectQuery(`UPDATE sessions SET last_used = now\(\)`).
		WithArgs("tok").
		WillReturnRows(sessionRows().AddRow(int64(1), int64(2), "tok", now, now, now.Add(time.Hour)))

	sess, err := NewSessionStore(mock).Get(context.Background(), "tok", true)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(2), sess.UserID)
}

func TestSessionStoreGetAbsentIsNilNotError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE token`).
		WithArgs("missing").
		WillReturnRows(sessionRows())

	sess, err := NewSessionStore(mock).Get(context.Background(), "missing", false)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionStoreDeleteMissing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM sessions WHERE token`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewSessionStore(mock).Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStoreDeleteAllExceptKeepsCurrent(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM sessions WHERE user_id = \$1 AND id != \$2`).
		WithArgs(int64(2), int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err := NewSessionStore(mock).DeleteAllExcept(context.Background(), &entity.Session{ID: 5, UserID: 2})
	assert.NoError(t, err)
}

func TestSessionStoreDeleteExpiredReportsCount(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at < now\(\)`).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := NewSessionStore(mock).DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
