package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/port"
)

type prober struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProber creates a ConnectionProber that counts the job offers table.
func NewProber(db *sqlx.DB, logger *zap.Logger) port.ConnectionProber {
	return &prober{db: db, logger: logger.Named("store.probe")}
}

func (p *prober) TestConnection(ctx context.Context) bool {
	query, args, err := psql.Select("COUNT(*)").From(catalog.Offres.Table.Name).ToSql()
	if err != nil {
		p.logger.Error("prober.TestConnection: building query", zap.Error(err))
		return false
	}

	var count int
	if err := p.db.GetContext(ctx, &count, query, args...); err != nil {
		p.logger.Warn("connection test failed", zap.Error(err))
		return false
	}
	p.logger.Info("connection test succeeded", zap.Int("job_offers", count))
	return true
}
