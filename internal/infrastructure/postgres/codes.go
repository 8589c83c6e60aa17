package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const codeColumns = "id, user_id, purpose, code, created_at, used_at, expires_at"

// CodeStore is the data-access group for one-time codes (email verification,
// password reset).
type CodeStore struct {
	q Querier
}

func NewCodeStore(q Querier) *CodeStore {
	return &CodeStore{q: q}
}

func scanCode(row pgx.Row) (*entity.Code, error) {
	c := &entity.Code{}
	err := row.Scan(&c.ID, &c.UserID, &c.Purpose, &c.Code, &c.CreatedAt, &c.UsedAt, &c.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new code. When code is empty a random one is generated.
// expiresAt may be nil for codes that never expire.
func (s *CodeStore) Create(ctx context.Context, userID int64, purpose entity.CodePurpose, expiresAt *time.Time, code string) (*entity.Code, error) {
	if code == "" {
		code = uuid.NewString()
	}
	row := s.q.QueryRow(ctx, `
		INSERT INTO codes (user_id, purpose, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+codeColumns,
		userID, purpose, code, expiresAt)
	return scanCode(row)
}

// Get fetches a code by its code string without touching it.
func (s *CodeStore) Get(ctx context.Context, code string) (*entity.Code, error) {
	row := s.q.QueryRow(ctx, `SELECT `+codeColumns+` FROM codes WHERE code = $1`, code)
	c, err := scanCode(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return c, nil
}

// LastOfUser fetches the most recently created code for a user, optionally
// filtered by purpose (empty purpose matches any).
func (s *CodeStore) LastOfUser(ctx context.Context, userID int64, purpose entity.CodePurpose) (*entity.Code, error) {
	var row pgx.Row
	if purpose == "" {
		row = s.q.QueryRow(ctx, `
			SELECT `+codeColumns+` FROM codes
			WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)
	} else {
		row = s.q.QueryRow(ctx, `
			SELECT `+codeColumns+` FROM codes
			WHERE user_id = $1 AND purpose = $2 ORDER BY created_at DESC LIMIT 1`,
			userID, purpose)
	}
	c, err := scanCode(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return c, nil
}

// GetAndMarkUsed redeems a code by its code string in a single atomic
// statement: the used_at stamp only lands if the code was not already used,
// so concurrent redemptions of the same code cannot both succeed. A code
// that is missing or already used reads as ErrNotFound. Purpose and expiry
// are the caller's to check on the returned row.
func (s *CodeStore) GetAndMarkUsed(ctx context.Context, code string) (*entity.Code, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE codes SET used_at = now()
		WHERE code = $1 AND used_at IS NULL
		RETURNING `+codeColumns, code)
	c, err := scanCode(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return c, nil
}

// MarkUsed stamps a code as used by its id. Distinct from GetAndMarkUsed:
// this one is for codes the caller already holds.
func (s *CodeStore) MarkUsed(ctx context.Context, codeID int64) error {
	tag, err := s.q.Exec(ctx, `UPDATE codes SET used_at = now() WHERE id = $1`, codeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
