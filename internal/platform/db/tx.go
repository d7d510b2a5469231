package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by pools and transactions.
// Repositories issue all queries through it so the same code runs inside and
// outside a transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type contextKey string

const txKey contextKey = "db_tx"

// WithQuerier returns a context carrying the given querier. Repositories that
// find a querier in the context use it instead of their pool.
func WithQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, txKey, q)
}

// QuerierFromContext retrieves the context-scoped querier, or nil when the
// context carries none.
func QuerierFromContext(ctx context.Context) Querier {
	q, _ := ctx.Value(txKey).(Querier)
	return q
}

// InTx runs fn inside a single transaction. The transaction is exposed to
// repositories through the context, so every query fn issues joins it. The
// transaction commits when fn returns nil and rolls back otherwise.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(WithQuerier(ctx, tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AcquireAdvisoryLock takes a transaction-scoped advisory lock keyed on the
// given string. The lock is released automatically when the surrounding
// transaction commits or rolls back.
func AcquireAdvisoryLock(ctx context.Context, q Querier, key string) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("acquire advisory lock %q: %w", key, err)
	}
	return nil
}
