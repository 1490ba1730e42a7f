package port

import (
	"context"

	"seogen/internal/domain"
)

// RecordStore defines the contract for full-record persistence of one vertical.
// Records are inserted and read back; nothing is updated or deleted. Failures
// are logged by the implementation and never surface as errors.
type RecordStore[F domain.Record] interface {
	// FetchAll returns every stored record, newest first. It returns an empty
	// slice when the store cannot be read.
	FetchAll(ctx context.Context) []F
	// Save inserts a single record and reports whether it was written.
	Save(ctx context.Context, record F) bool
}

// ConnectionProber checks that the record store is reachable.
type ConnectionProber interface {
	TestConnection(ctx context.Context) bool
}
