package lvrfetcher

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"lvr-ingest/internal/core/domain"
)

// parseRows turns decoded CSV text into header-keyed rows. The source's
// structure drifts between releases, so the reader is deliberately loose:
// ragged rows are kept (missing cells become empty, extra cells are dropped)
// and quoting irregularities are tolerated. Structurally unparseable input
// degrades to an empty row set; the pipeline never dies on a bad file.
func parseRows(text string, log zerolog.Logger) []domain.RawRow {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		log.Warn().Err(err).Msg("csv header unreadable, degrading to empty row set")
		return nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []domain.RawRow
	skipped := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		row := make(domain.RawRow, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("malformed csv rows dropped")
	}
	return rows
}
