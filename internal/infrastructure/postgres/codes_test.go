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

func codeRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "purpose", "code", "created_at", "used_at", "expires_at"})
}

func TestCodeStoreCreateGeneratesCodeWhenEmpty(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO codes`).
		WithArgs(int64(1), entity.CodePurposeEmailVerification, (*time.Time)(nil), pgxmock.AnyArg()).
		WillReturnRows(codeRows().AddRow(int64(9), int64(1), entity.CodePurposeEmailVerification, "generated", now, (*time.Time)(nil), (*time.Time)(nil)))

	c, err := NewCodeStore(mock).Create(context.Background(), 1, entity.CodePurposeEmailVerification, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(9), c.ID)
	assert.Nil(t, c.UsedAt)
}

func TestCodeStoreGetAndMarkUsedRedeemsAtomically(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	used := now
	mock.ExpectQuery(`(?s)UPDATE codes SET used_at = now\(\).+used_at IS NULL`).
		WithArgs("abc").
		WillReturnRows(codeRows().AddRow(int64(9), int64(1), entity.CodePurposePasswordReset, "abc", now, &used, (*time.Time)(nil)))

	c, err := NewCodeStore(mock).GetAndMarkUsed(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, c.UsedAt)
}

func TestCodeStoreGetAndMarkUsedAlreadyRedeemed(t *testing.T) {
	mock := newMock(t)
	// a used code no longer matches the used_at IS NULL predicate
	mock.ExpectQuery(`UPDATE codes SET used_at = now\(\)`).
		WithArgs("abc").
		WillReturnRows(codeRows())

	_, err := NewCodeStore(mock).GetAndMarkUsed(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodeStoreLastOfUserAnyPurpose(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM codes.+ORDER BY created_at DESC LIMIT 1`).
		WithArgs(int64(1)).
		WillReturnRows(codeRows().AddRow(int64(3), int64(1), entity.CodePurposeEmailVerification, "xyz", now, (*time.Time)(nil), (*time.Time)(nil)))

	c, err := NewCodeStore(mock).LastOfUser(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "xyz", c.Code)
}
