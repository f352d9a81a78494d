package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lvr-ingest/internal/adapters/memstorage"
	"lvr-ingest/internal/core/domain"
)

// fakeFetcher serves canned rows (or errors) per region code and records
// which URLs of the catalog were actually visited.
type fakeFetcher struct {
	rows    map[string][]domain.RawRow
	errs    map[string]error
	fetched []string
}

func (f *fakeFetcher) FetchRegionRows(_ context.Context, region domain.Region, _ string) ([]domain.RawRow, string, error) {
	f.fetched = append(f.fetched, region.Code)
	if err := f.errs[region.Code]; err != nil {
		return nil, "", err
	}
	return f.rows[region.Code], "utf-8", nil
}

func validRows(prefix string, n int) []domain.RawRow {
	rows := make([]domain.RawRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, domain.RawRow{
			"鄉鎮市區":    "中正區",
			"土地位置建物門牌": fmt.Sprintf("%s路%d號", prefix, i+1),
			"交易年月日":   "1140115",
			"總價元":     "12000000",
		})
	}
	return rows
}

var testCatalog = []domain.Region{
	{Code: "A", Name: "臺北市"},
	{Code: "B", Name: "臺中市"},
	{Code: "C", Name: "基隆市"},
}

func newUseCase(f *fakeFetcher, store *memstorage.MemoryStorageAdapter) (*IngestSeasonUseCase, *[]time.Duration) {
	uc := NewIngestSeasonUseCase(f, store, testCatalog, 3*time.Second, zerolog.Nop())
	var pauses []time.Duration
	uc.sleep = func(d time.Duration) { pauses = append(pauses, d) }
	uc.now = func() time.Time { return time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC) }
	return uc, &pauses
}

func TestExecute_RegionIsolation(t *testing.T) {
	f := &fakeFetcher{
		rows: map[string][]domain.RawRow{
			"A": validRows("忠孝東", 5),
			"C": validRows("信二", 7),
		},
		errs: map[string]error{"B": errors.New("connection reset")},
	}
	store := memstorage.NewMemoryStorageAdapter()
	uc, pauses := newUseCase(f, store)

	total, err := uc.Execute(context.Background(), "", 0, 0)
	require.NoError(t, err, "a failing region never aborts the run")
	assert.Equal(t, 12, total)
	assert.Equal(t, []string{"A", "B", "C"}, f.fetched, "catalog order, nothing skipped early")
	assert.Len(t, *pauses, 2, "pause between regions even after a failure")
}

func TestExecute_Idempotent(t *testing.T) {
	f := &fakeFetcher{rows: map[string][]domain.RawRow{"A": validRows("忠孝東", 4)}}
	store := memstorage.NewMemoryStorageAdapter()
	uc, _ := newUseCase(f, store)

	first, err := uc.Execute(context.Background(), "114S1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, first)

	second, err := uc.Execute(context.Background(), "114S1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "same period, same payload: everything is a duplicate")
	assert.Equal(t, 4, store.Len())
}

func TestExecute_InvalidRowsFiltered(t *testing.T) {
	rows := validRows("忠孝東", 2)
	rows = append(rows,
		domain.RawRow{"土地位置建物門牌": "某路1號", "交易年月日": "1140115", "總價元": "0"},
		domain.RawRow{"土地位置建物門牌": "某路2號", "交易年月日": "bad", "總價元": "100"},
	)
	f := &fakeFetcher{rows: map[string][]domain.RawRow{"A": rows}}
	store := memstorage.NewMemoryStorageAdapter()
	uc, _ := newUseCase(f, store)

	total, err := uc.Execute(context.Background(), "114S1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "zero-price and bad-date rows never reach storage")
}

func TestExecute_SeasonResolution(t *testing.T) {
	f := &fakeFetcher{rows: map[string][]domain.RawRow{"A": validRows("x", 1)}}
	store := memstorage.NewMemoryStorageAdapter()
	uc, _ := newUseCase(f, store)

	_, err := uc.Execute(context.Background(), "", 113, 2)
	require.NoError(t, err)

	got, err := store.Query(context.Background(), domain.TransactionFilter{Season: "113S2"})
	require.NoError(t, err)
	assert.Len(t, got, 1, "explicit (year, quarter) drives the source tag")
}

func TestExecute_StorageInitFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{}
	store := memstorage.NewMemoryStorageAdapter()
	store.EnsureSchemaErr = errors.New("connect: refused")
	uc, _ := newUseCase(f, store)

	_, err := uc.Execute(context.Background(), "", 0, 0)
	require.Error(t, err)
	assert.Empty(t, f.fetched, "no fetch is attempted without storage")
}
