package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"seogen/internal/config"
)

// NewDB opens a PostgreSQL connection pool without dialing. An unreachable
// server is reported by Ping and by the store operations, never here.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// Ping checks the pool once at startup. A failure is logged and the server
// keeps running.
func Ping(ctx context.Context, db *sqlx.DB, logger *zap.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Warn("postgres unreachable, records will not be persisted until it comes back", zap.Error(err))
		return false
	}
	return true
}
