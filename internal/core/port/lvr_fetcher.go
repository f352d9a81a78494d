package port

import (
	"context"

	"lvr-ingest/internal/core/domain"
)

// SeasonFetcherPort is the pipeline's view of the upstream disclosure portal.
// One call covers retrieval, text-encoding recovery and tabular parsing for a
// single region+season; the returned label names the encoding that recovered
// the payload so it can travel into each record's audit trail.
type SeasonFetcherPort interface {
	FetchRegionRows(ctx context.Context, region domain.Region, season string) (rows []domain.RawRow, encoding string, err error)
}
