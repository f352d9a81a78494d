package port

import (
	"context"

	"lvr-ingest/internal/core/domain"
)

// TransactionStoragePort is the contract between the pipeline and the
// persistence layer. The storage itself enforces the natural-key uniqueness
// of (district, address, transaction_date, total_price): colliding inserts
// are skipped, never overwritten.
type TransactionStoragePort interface {
	// EnsureSchema makes the schema exist; safe to call on every run.
	EnsureSchema(ctx context.Context) error

	// InsertBatch persists the batch atomically and returns how many records
	// were actually new. Duplicates count as zero, not as errors.
	InsertBatch(ctx context.Context, records []domain.TransactionRecord) (int, error)

	// Query and AggregateByDistrict serve the read-only reporting layer.
	Query(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionRecord, error)
	AggregateByDistrict(ctx context.Context, season string) ([]domain.DistrictStats, error)
}
