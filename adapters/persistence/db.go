package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvu/devconnect/internal/config"
	"github.com/minhvu/devconnect/pkg/logger"
)

// NewPostgresPool builds the one process-wide connection pool. It is created
// in main and handed down; nothing reads it from package state.
func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("cannot create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connected PostgreSQL successfully.")
	return pool, nil
}
