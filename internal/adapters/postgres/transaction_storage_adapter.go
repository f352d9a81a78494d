// Package postgres implements TransactionStoragePort on a pgx connection
// pool. The natural-key uniqueness lives here, in the schema, so duplicate
// suppression holds no matter who writes.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lvr-ingest/internal/core/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
	id               BIGSERIAL PRIMARY KEY,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	district         TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	address          TEXT NOT NULL,
	project_name     TEXT,
	land_area        NUMERIC(12,2),
	building_area    NUMERIC(12,2),
	floor            TEXT,
	total_floor      INT,
	building_type    TEXT,
	main_use         TEXT,
	construction     TEXT,
	build_year       INT,
	transaction_date DATE NOT NULL,
	total_price      BIGINT NOT NULL,
	unit_price       BIGINT,
	parking_type     TEXT,
	parking_price    BIGINT,
	note             TEXT,
	source           TEXT NOT NULL,
	raw_data         JSONB NOT NULL,
	encoding         TEXT NOT NULL DEFAULT 'utf-8',
	CONSTRAINT transactions_natural_key
		UNIQUE (district, address, transaction_date, total_price)
);
CREATE INDEX IF NOT EXISTS idx_transactions_district ON transactions (district);
CREATE INDEX IF NOT EXISTS idx_transactions_source   ON transactions (source);
CREATE INDEX IF NOT EXISTS idx_transactions_date     ON transactions (transaction_date);
`

// PostgresStorageAdapter implements port.TransactionStoragePort.
type PostgresStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresStorageAdapter creates the adapter over an existing pool.
func NewPostgresStorageAdapter(pool *pgxpool.Pool) (*PostgresStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresStorageAdapter{pool: pool}, nil
}

// EnsureSchema creates the table, the natural-key constraint and the query
// indexes. Idempotent; runs at the start of every ingestion.
func (a *PostgresStorageAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure transactions schema: %w", err)
	}
	return nil
}

var insertColumns = []string{
	"district", "transaction_type", "address", "project_name",
	"land_area", "building_area", "floor", "total_floor",
	"building_type", "main_use", "construction", "build_year",
	"transaction_date", "total_price", "unit_price",
	"parking_type", "parking_price", "note",
	"source", "raw_data", "encoding",
}

var insertSQL = buildInsertSQL()

func buildInsertSQL() string {
	placeholders := make([]string, len(insertColumns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		`INSERT INTO transactions (%s) VALUES (%s)
		 ON CONFLICT ON CONSTRAINT transactions_natural_key DO NOTHING`,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// InsertBatch persists a batch inside one transaction and returns how many
// records were actually new. Natural-key collisions are skipped silently;
// any other failure rolls the whole batch back.
func (a *PostgresStorageAdapter) InsertBatch(ctx context.Context, records []domain.TransactionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin insert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, r := range records {
		tag, err := tx.Exec(ctx, insertSQL,
			r.District, r.TransactionType, r.Address, r.ProjectName,
			r.LandArea, r.BuildingArea, r.Floor, r.TotalFloor,
			r.BuildingType, r.MainUse, r.Construction, r.BuildYear,
			r.TransactionDate, r.TotalPrice, r.UnitPrice,
			r.ParkingType, r.ParkingPrice, r.Note,
			r.Source, r.RawData, r.Encoding,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record (district: %s, date: %s): %w",
				r.District, r.TransactionDate, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit insert batch: %w", err)
	}
	return inserted, nil
}

// Query returns records for the reporting layer, newest first.
func (a *PostgresStorageAdapter) Query(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionRecord, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	rows, err := a.pool.Query(ctx, `
		SELECT district, transaction_type, address, project_name,
		       land_area, building_area, floor, total_floor,
		       building_type, main_use, construction, build_year,
		       transaction_date, total_price, unit_price,
		       parking_type, parking_price, note,
		       source, raw_data::text, encoding
		FROM transactions
		WHERE ($1 = '' OR district = $1)
		  AND ($2 = '' OR source LIKE '%-' || $2)
		ORDER BY transaction_date DESC, id DESC
		LIMIT $3`,
		filter.District, filter.Season, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var r domain.TransactionRecord
		var date time.Time
		if err := rows.Scan(
			&r.District, &r.TransactionType, &r.Address, &r.ProjectName,
			&r.LandArea, &r.BuildingArea, &r.Floor, &r.TotalFloor,
			&r.BuildingType, &r.MainUse, &r.Construction, &r.BuildYear,
			&date, &r.TotalPrice, &r.UnitPrice,
			&r.ParkingType, &r.ParkingPrice, &r.Note,
			&r.Source, &r.RawData, &r.Encoding,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		r.TransactionDate = date.Format("2006-01-02")
		records = append(records, r)
	}
	return records, rows.Err()
}

// AggregateByDistrict returns per-district volume stats for one season (or
// for everything when season is empty).
func (a *PostgresStorageAdapter) AggregateByDistrict(ctx context.Context, season string) ([]domain.DistrictStats, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT district,
		       COUNT(*)                          AS count,
		       SUM(total_price)                  AS total_amount,
		       COALESCE(AVG(unit_price), 0)::float8 AS avg_unit_price
		FROM transactions
		WHERE ($1 = '' OR source LIKE '%-' || $1)
		GROUP BY district
		ORDER BY count DESC, district`,
		season,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by district: %w", err)
	}
	defer rows.Close()

	var stats []domain.DistrictStats
	for rows.Next() {
		var s domain.DistrictStats
		if err := rows.Scan(&s.District, &s.Count, &s.TotalAmount, &s.AvgUnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan district stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
