package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx embeds pgx.Tx for the methods the scope never touches and records
// commit/rollback calls.
type fakeTx struct {
	pgx.Tx
	commits     int
	rollbacks   int
	commitErr   error
	rollbackErr error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return t.rollbackErr
}

type fakeConn struct {
	tx       *fakeTx
	beginErr error
	released int
}

func (c *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return c.tx, nil
}

func (c *fakeConn) Release() { c.released++ }

type fakeAcquirer struct {
	conn *fakeConn
	err  error
}

func (a fakeAcquirer) Acquire(ctx context.Context) (scopeConn, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.conn, nil
}

func newFakes() (fakeAcquirer, *fakeConn, *fakeTx) {
	tx := &fakeTx{}
	conn := &fakeConn{tx: tx}
	return fakeAcquirer{conn: conn}, conn, tx
}

func TestScopeCommitsOnSuccess(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)
	require.NotNil(t, s.Functions)

	require.NoError(t, s.Close(ctx, nil))
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
	assert.Equal(t, 1, conn.released)
}

func TestScopeRollsBackOnError(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)

	require.NoError(t, s.Close(ctx, errors.New("boom")))
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, conn.released)
}

func TestScopeMarkRollback(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)
	s.MarkRollback()

	require.NoError(t, s.Close(ctx, nil))
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, conn.released)
}

func TestScopeReleasesOnCommitFailure(t *testing.T) {
	a, conn, tx := newFakes()
	tx.commitErr = errors.New("commit exploded")
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)

	err = s.Close(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, 1, conn.released, "connection must go back to the pool even when commit fails")
}

func TestScopeCloseIdempotent(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)

	require.NoError(t, s.Close(ctx, nil))
	require.NoError(t, s.Close(ctx, nil))
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 1, conn.released)
}

func TestScopeToleratesAlreadyClosedTxOnRollback(t *testing.T) {
	a, conn, tx := newFakes()
	tx.rollbackErr = pgx.ErrTxClosed
	ctx := context.Background()

	s, err := begin(ctx, a)
	require.NoError(t, err)

	require.NoError(t, s.Close(ctx, errors.New("boom")))
	assert.Equal(t, 1, conn.released)
}

func TestScopeReleasesWhenBeginFails(t *testing.T) {
	tx := &fakeTx{}
	conn := &fakeConn{tx: tx, beginErr: errors.New("no tx for you")}
	a := fakeAcquirer{conn: conn}

	_, err := begin(context.Background(), a)
	require.Error(t, err)
	assert.Equal(t, 1, conn.released)
}

func TestWithScopeCommitsAndPropagatesResult(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	called := false
	err := withScope(ctx, a, func(s *Scope) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 1, conn.released)
}

func TestWithScopeRollsBackOnFnError(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	want := errors.New("business failure")
	err := withScope(ctx, a, func(s *Scope) error { return want })
	require.ErrorIs(t, err, want)
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, conn.released)
}

func TestWithScopeReleasesOnPanic(t *testing.T) {
	a, conn, tx := newFakes()
	ctx := context.Background()

	require.Panics(t, func() {
		_ = withScope(ctx, a, func(s *Scope) error { panic("handler blew up") })
	})
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, conn.released)
}

func TestWithScopeAcquireFailure(t *testing.T) {
	want := errors.New("pool exhausted")
	err := withScope(context.Background(), fakeAcquirer{err: want}, func(s *Scope) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	require.ErrorContains(t, err, "acquire connection")
}
