package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
)

// q is the read surface shared by pgxpool.Pool and a checked-out pgxpool.Conn.
type q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type connKey struct{}

func withConn(ctx context.Context, conn *pgxpool.Conn) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

// getQ prefers the connection held by the current session and falls back to the pool.
func getQ(ctx context.Context, pool *pgxpool.Pool) q {
	if conn, ok := ctx.Value(connKey{}).(*pgxpool.Conn); ok && conn != nil {
		return conn
	}
	return pool
}

type sessionManager struct{ pool *pgxpool.Pool }

func NewSessionManager(pool *pgxpool.Pool) repository.SessionManager {
	return &sessionManager{pool: pool}
}

// WithinSession checks one connection out of the pool for the duration of fn.
// Nested calls reuse the outer connection.
func (m *sessionManager) WithinSession(ctx context.Context, fn repository.SessionFunc) error {
	if err := ensurePool(m.pool); err != nil {
		return err
	}
	if _, ok := ctx.Value(connKey{}).(*pgxpool.Conn); ok {
		return fn(ctx)
	}
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return errors.Join(repository.ErrUnavailable, err)
	}
	defer conn.Release()
	return fn(withConn(ctx, conn))
}

var _ repository.SessionManager = (*sessionManager)(nil)

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

func count(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	if err := ensurePool(pool); err != nil {
		return 0, err
	}
	var n int
	if err := getQ(ctx, pool).QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}
