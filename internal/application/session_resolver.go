package application

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
)

// SessionData is what an authenticated request carries: the session row that
// matched the token and the user it belongs to.
type SessionData struct {
	Session *entity.Session
	User    *entity.User
}

// SessionResolver turns a bearer token into SessionData. Each call runs in
// its own short transaction scope, isolated from whatever scope the request
// handler opens afterwards, so the last_used touch commits even when the
// handler's work rolls back.
type SessionResolver struct {
	Pool *pgxpool.Pool
}

func NewSessionResolver(pool *pgxpool.Pool) *SessionResolver {
	return &SessionResolver{Pool: pool}
}

// ResolveOptional returns (nil, nil) for an empty token, an unknown token,
// or an expired session. Expired rows are left in place; retention is the
// sweeper's job.
func (r *SessionResolver) ResolveOptional(ctx context.Context, token string) (*SessionData, error) {
	if token == "" {
		return nil, nil
	}
	var data *SessionData
	err := postgres.WithScope(ctx, r.Pool, func(s *postgres.Scope) error {
		sess, err := s.Functions.Sessions.Get(ctx, token, true)
		if err != nil {
			return err
		}
		if sess == nil || sess.Expired(time.Now()) {
			return nil
		}
		user, err := s.Functions.Users.GetByID(ctx, sess.UserID)
		if err != nil {
			return err
		}
		data = &SessionData{Session: sess, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ResolveRequired is ResolveOptional with absence promoted to ErrUnauthorized.
func (r *SessionResolver) ResolveRequired(ctx context.Context, token string) (*SessionData, error) {
	data, err := r.ResolveOptional(ctx, token)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrUnauthorized
	}
	return data, nil
}
