package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const userColumns = "id, email, password_hash, created_at, email_verified, blocked, admin_level, last_login"

// UserStore is the data-access group for the users table.
type UserStore struct {
	q Querier
}

func NewUserStore(q Querier) *UserStore {
	return &UserStore{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&u.EmailVerified, &u.Blocked, &u.AdminLevel, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new unverified user. The password hash must already be
// computed by the caller. Returns ErrAlreadyExists when the email is taken.
func (s *UserStore) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		email, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

// List returns users ordered by id, paginated.
func (s *UserStore) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := s.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// VerifyPassword checks credentials with equality inside the query itself.
// The caller must supply a precomputed hash; no hashing happens here. The
// outcome deliberately does not distinguish an unknown email from a wrong
// password.
func (s *UserStore) VerifyPassword(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE email = $1 AND password_hash = $2`,
		email, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		if notFoundIfNoRows(err) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

// MarkEmailVerified sets email_verified and returns the fresh row. Setting
// true on an already-verified user is not an error.
func (s *UserStore) MarkEmailVerified(ctx context.Context, userID int64) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE users SET email_verified = TRUE WHERE id = $1
		RETURNING `+userColumns, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

// UpdateLastLogin stamps last_login with the database clock.
func (s *UserStore) UpdateLastLogin(ctx context.Context, userID int64) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE users SET last_login = now() WHERE id = $1
		RETURNING `+userColumns, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

func (s *UserStore) SetPassword(ctx context.Context, userID int64, passwordHash string) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE users SET password_hash = $2 WHERE id = $1
		RETURNING `+userColumns, userID, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

func (s *UserStore) SetBlocked(ctx context.Context, userID int64, blocked bool) (*entity.User, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE users SET blocked = $2 WHERE id = $1
		RETURNING `+userColumns, userID, blocked)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return u, nil
}

func (s *UserStore) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	var blocked bool
	err := s.q.QueryRow(ctx, `SELECT blocked FROM users WHERE id = $1`, userID).Scan(&blocked)
	if err != nil {
		return false, notFoundIfNoRows(err)
	}
	return blocked, nil
}
