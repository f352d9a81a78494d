// Package memstorage is an in-memory TransactionStoragePort with the same
// insert-or-skip semantics as the Postgres adapter. It backs tests and dry
// runs; nothing here survives the process.
package memstorage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"lvr-ingest/internal/core/domain"
)

// MemoryStorageAdapter implements port.TransactionStoragePort.
type MemoryStorageAdapter struct {
	mu      sync.Mutex
	records []domain.TransactionRecord
	keys    map[domain.NaturalKey]struct{}

	schemaReady bool

	// EnsureSchemaErr makes schema initialization fail on demand, so tests
	// can exercise the one fatal path the orchestrator has.
	EnsureSchemaErr error
}

// NewMemoryStorageAdapter creates an empty store.
func NewMemoryStorageAdapter() *MemoryStorageAdapter {
	return &MemoryStorageAdapter{
		keys: make(map[domain.NaturalKey]struct{}),
	}
}

// EnsureSchema marks the store ready. Idempotent, like the real schema DDL.
func (m *MemoryStorageAdapter) EnsureSchema(_ context.Context) error {
	if m.EnsureSchemaErr != nil {
		return m.EnsureSchemaErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemaReady = true
	return nil
}

// InsertBatch mirrors the Postgres adapter: all-or-nothing per batch,
// natural-key collisions skipped, count of the actually-new returned.
func (m *MemoryStorageAdapter) InsertBatch(_ context.Context, records []domain.TransactionRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := 0
	for _, r := range records {
		key := r.Key()
		if _, dup := m.keys[key]; dup {
			continue
		}
		m.keys[key] = struct{}{}
		m.records = append(m.records, r)
		inserted++
	}
	return inserted, nil
}

// Query filters by district and season, newest date first.
func (m *MemoryStorageAdapter) Query(_ context.Context, filter domain.TransactionFilter) ([]domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	var out []domain.TransactionRecord
	for _, r := range m.records {
		if filter.District != "" && r.District != filter.District {
			continue
		}
		if filter.Season != "" && !strings.HasSuffix(r.Source, "-"+filter.Season) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate > out[j].TransactionDate
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AggregateByDistrict mirrors the SQL aggregate: count, amount sum and
// average unit price per district.
func (m *MemoryStorageAdapter) AggregateByDistrict(_ context.Context, season string) ([]domain.DistrictStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type agg struct {
		count     int64
		total     int64
		unitSum   int64
		unitCount int64
	}
	byDistrict := make(map[string]*agg)
	for _, r := range m.records {
		if season != "" && !strings.HasSuffix(r.Source, "-"+season) {
			continue
		}
		a, ok := byDistrict[r.District]
		if !ok {
			a = &agg{}
			byDistrict[r.District] = a
		}
		a.count++
		a.total += r.TotalPrice
		if r.UnitPrice != nil {
			a.unitSum += *r.UnitPrice
			a.unitCount++
		}
	}

	stats := make([]domain.DistrictStats, 0, len(byDistrict))
	for district, a := range byDistrict {
		s := domain.DistrictStats{
			District:    district,
			Count:       a.count,
			TotalAmount: a.total,
		}
		if a.unitCount > 0 {
			s.AvgUnitPrice = float64(a.unitSum) / float64(a.unitCount)
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].District < stats[j].District
	})
	return stats, nil
}

// Len reports how many records are persisted; test helper.
func (m *MemoryStorageAdapter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
