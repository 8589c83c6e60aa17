package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const sessionColumns = "id, user_id, token, created_at, last_used, expires_at"

// SessionStore is the data-access group for the sessions table.
type SessionStore struct {
	q Querier
}

func NewSessionStore(q Querier) *SessionStore {
	return &SessionStore{q: q}
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	s := &entity.Session{}
	err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt, &s.LastUsed, &s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a session row for an already-generated opaque token.
func (s *SessionStore) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) (*entity.Session, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING `+sessionColumns,
		userID, token, expiresAt)
	return scanSession(row)
}

// Get looks a session up by token. With touch set, last_used is stamped to
// now() as a side effect of the same statement; this is one combined
// read+touch, not two round trips. Returns nil (not ErrNotFound) when no
// session matches: absence is an expected state for auth resolution.
func (s *SessionStore) Get(ctx context.Context, token string, touch bool) (*entity.Session, error) {
	var row pgx.Row
	if touch {
		row = s.q.QueryRow(ctx, `
			UPDATE sessions SET last_used = now() WHERE token = $1
			RETURNING `+sessionColumns, token)
	} else {
		row = s.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE token = $1`, token)
	}
	sess, err := scanSession(row)
	if err != nil {
		if notFoundIfNoRows(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// Delete removes a session by token. ErrNotFound when no row matched.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes a session by id. ErrNotFound when no row matched.
func (s *SessionStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllExcept removes every session of the given session's user except
// that session itself ("log out other devices"). Deleting zero rows is fine.
func (s *SessionStore) DeleteAllExcept(ctx context.Context, sess *entity.Session) error {
	_, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1 AND id != $2`,
		sess.UserID, sess.ID)
	return err
}

// DeleteAllOfUser removes every session of a user (admin block, account
// compromise). Deleting zero rows is fine.
func (s *SessionStore) DeleteAllOfUser(ctx context.Context, userID int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// DeleteExpired purges sessions whose expiry has passed and returns the
// number of rows removed. Expiry is otherwise advisory at read time.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
