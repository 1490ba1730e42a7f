// Package noop provides the record store used when no database is configured.
// Every call logs a warning and reports failure.
package noop

import (
	"context"

	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/port"
)

type noopStore[F domain.Record] struct {
	logger *zap.Logger
}

// NewStore creates a RecordStore that persists nothing.
func NewStore[F domain.Record](vertical domain.Vertical, logger *zap.Logger) port.RecordStore[F] {
	return &noopStore[F]{logger: logger.Named("store.noop." + string(vertical))}
}

func (s *noopStore[F]) FetchAll(_ context.Context) []F {
	s.logger.Warn("no database configured, nothing to load")
	return []F{}
}

func (s *noopStore[F]) Save(_ context.Context, record F) bool {
	s.logger.Warn("no database configured, record kept in memory only", zap.String("id", record.RecordID()))
	return false
}

type noopProber struct {
	logger *zap.Logger
}

// NewProber creates a ConnectionProber that always fails.
func NewProber(logger *zap.Logger) port.ConnectionProber {
	return &noopProber{logger: logger.Named("store.noop")}
}

func (p *noopProber) TestConnection(_ context.Context) bool {
	p.logger.Warn("no database configured, connection test skipped")
	return false
}
