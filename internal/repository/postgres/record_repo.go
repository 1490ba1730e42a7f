package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/port"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type recordRepo[F domain.Record] struct {
	db     *sqlx.DB
	table  catalog.Table
	logger *zap.Logger
}

// NewRecordRepo creates a PostgreSQL-backed RecordStore over the given table.
func NewRecordRepo[F domain.Record](db *sqlx.DB, table catalog.Table, logger *zap.Logger) port.RecordStore[F] {
	return &recordRepo[F]{
		db:     db,
		table:  table,
		logger: logger.Named("store." + table.Name),
	}
}

func (r *recordRepo[F]) FetchAll(ctx context.Context) []F {
	query, args, err := psql.
		Select(append(append([]string{}, r.table.Columns...), "created_at")...).
		From(r.table.Name).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		r.logger.Error("recordRepo.FetchAll: building query", zap.Error(err))
		return []F{}
	}

	records := []F{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.Error("recordRepo.FetchAll", zap.Error(err))
		return []F{}
	}
	return records
}

func (r *recordRepo[F]) Save(ctx context.Context, record F) bool {
	if _, err := r.db.NamedExecContext(ctx, r.table.InsertQuery(), record); err != nil {
		r.logger.Error("recordRepo.Save",
			zap.String("id", record.RecordID()),
			zap.Error(err),
		)
		return false
	}
	return true
}
