// Package repository implements the postgres store behind domain.Store.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitkz/fitcoach/internal/domain"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// store works inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect opens a tuned pgx pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Store implements domain.Store over a pool or transaction.
type Store struct {
	db DBTX
}

// NewStore creates a Store bound to db.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

var _ domain.Store = (*Store)(nil)

// UnitOfWork runs store operations in a single transaction. Per-user
// serialization comes from the FOR UPDATE lock taken by
// UserByChatIDForUpdate inside the transaction.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a UnitOfWork over the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)

// WithinTx begins a transaction, runs fn against a transactional store and
// commits. Any error rolls the whole unit back; nothing partial is applied.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(ctx, NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
