package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the statement surface the data-access groups run against.
// pgx.Tx satisfies it, so every store call inside a Scope executes on the
// scope's transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Functions bundles the per-entity data-access groups bound to one
// transaction. A Functions value is only valid for the lifetime of the Scope
// that produced it.
type Functions struct {
	Users                *UserStore
	Sessions             *SessionStore
	Codes                *CodeStore
	SavedCharacters      *SavedCharacterStore
	UsedAssets           *UsedAssetStore
	SavedCharacterAssets *SavedCharacterAssetStore
	Assets               *AssetStore
}

// NewFunctions binds every data-access group to q.
func NewFunctions(q Querier) *Functions {
	return &Functions{
		Users:                NewUserStore(q),
		Sessions:             NewSessionStore(q),
		Codes:                NewCodeStore(q),
		SavedCharacters:      NewSavedCharacterStore(q),
		UsedAssets:           NewUsedAssetStore(q),
		SavedCharacterAssets: NewSavedCharacterAssetStore(q),
		Assets:               NewAssetStore(q),
	}
}

// scopeConn is the slice of *pgxpool.Conn the scope needs. Kept narrow so the
// lifecycle can be exercised with fakes.
type scopeConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

type acquirer interface {
	Acquire(ctx context.Context) (scopeConn, error)
}

type poolAcquirer struct {
	pool *pgxpool.Pool
}

func (p poolAcquirer) Acquire(ctx context.Context) (scopeConn, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Scope binds one pooled connection and one transaction together for the
// duration of a unit of work. A Scope must never be shared across goroutines.
//
// Usage:
//
//	s, err := postgres.Begin(ctx, pool)
//	if err != nil { ... }
//	defer func() { err = s.CloseOr(ctx, err) }()
//	u, err := s.Functions.Users.GetByID(ctx, id)
type Scope struct {
	raw       scopeConn
	tx        pgx.Tx
	rollback  bool
	closed    bool
	Functions *Functions
}

// Begin acquires a connection from the pool (blocking under the pool's own
// backpressure), opens a transaction, and binds the Functions namespace to it.
func Begin(ctx context.Context, pool *pgxpool.Pool) (*Scope, error) {
	return begin(ctx, poolAcquirer{pool: pool})
}

func begin(ctx context.Context, a acquirer) (*Scope, error) {
	c, err := a.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	tx, err := c.Begin(ctx)
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Scope{raw: c, tx: tx, Functions: NewFunctions(tx)}, nil
}

// MarkRollback forces the scope to roll back on Close even when no error is
// passed in. Used for business-rule failures that must undo writes without
// being treated as hard errors.
func (s *Scope) MarkRollback() {
	s.rollback = true
}

// Close finishes the scope: rollback when cause is non-nil or rollback was
// marked, commit otherwise. The connection is released back to the pool on
// every path, including commit and rollback failure. Close is idempotent.
func (s *Scope) Close(ctx context.Context, cause error) error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.raw.Release()

	if cause != nil || s.rollback {
		if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback: %w", err)
		}
		return nil
	}
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CloseOr closes the scope with cause and returns cause when it is non-nil,
// otherwise any commit error. Convenient in deferred form.
func (s *Scope) CloseOr(ctx context.Context, cause error) error {
	closeErr := s.Close(ctx, cause)
	if cause != nil {
		return cause
	}
	return closeErr
}

var errScopePanic = errors.New("panic inside transaction scope")

// WithScope runs fn inside a fresh Scope and closes it with fn's outcome.
// If fn panics, the transaction is rolled back, the connection released, and
// the panic rethrown.
func WithScope(ctx context.Context, pool *pgxpool.Pool, fn func(s *Scope) error) error {
	return withScope(ctx, poolAcquirer{pool: pool}, fn)
}

func withScope(ctx context.Context, a acquirer, fn func(s *Scope) error) (err error) {
	s, err := begin(ctx, a)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = s.Close(ctx, errScopePanic)
			panic(p)
		}
		err = s.CloseOr(ctx, err)
	}()
	return fn(s)
}
