// Package pgrepo implements the pricing repositories on PostgreSQL with pgx.
package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// NewPool opens a connection pool and verifies it with a ping.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// withTransaction runs fn in a transaction, committing on nil and rolling back otherwise.
// Errors from fn are returned unchanged.
func withTransaction(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		// After a successful commit Rollback returns ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error("failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// NUMERIC columns are read as text and parsed exactly.
func parseMoney(s string) (*domain.Money, error) {
	return domain.ParseMoney(s)
}

func parseNullMoney(s *string) (*domain.Money, error) {
	if s == nil {
		return nil, nil
	}
	return domain.ParseMoney(*s)
}

func moneyArg(m *domain.Money) interface{} {
	if m == nil {
		return nil
	}
	return m.Rat().FloatString(9)
}

func timeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
