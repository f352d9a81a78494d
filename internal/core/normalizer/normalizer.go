// Package normalizer maps one raw disclosure row into the canonical
// TransactionRecord, converting Minguo dates, metric areas and per-square-
// meter prices on the way. Rows that fail the validity gate are rejected
// with a typed reason and never reach persistence.
package normalizer

import (
	"errors"

	"lvr-ingest/internal/constants"
	"lvr-ingest/internal/core/domain"
)

// Rejection reasons. Callers count these; they are deliberately not logged
// per row.
var (
	ErrBadDate          = errors.New("normalizer: unparseable transaction date")
	ErrNonPositivePrice = errors.New("normalizer: total price is not positive")
)

// Normalize builds a TransactionRecord from one raw row. regionName is the
// enclosing region's display name, source the "{code}-{season}" provenance
// tag, encoding the label reported by the decoder.
func Normalize(row domain.RawRow, regionName, source, encoding string) (*domain.TransactionRecord, error) {
	date := convertDate(lookup(row, fieldTxDate))
	if date == "" {
		return nil, ErrBadDate
	}
	totalPrice := parseInt64(lookup(row, fieldTotalPrice))
	if totalPrice <= 0 {
		return nil, ErrNonPositivePrice
	}

	address := lookup(row, fieldAddress)

	txType := lookup(row, fieldTxType)
	if txType == "" {
		txType = constants.DefaultTransactionType
	}

	record := &domain.TransactionRecord{
		District:        extractDistrict(lookup(row, fieldDistrict), address, regionName),
		TransactionType: txType,
		Address:         address,
		ProjectName:     optString(lookup(row, fieldProjectName)),
		LandArea:        convertArea(lookup(row, fieldLandArea)),
		BuildingArea:    convertArea(lookup(row, fieldBuildingArea)),
		Floor:           optString(lookup(row, fieldFloor)),
		TotalFloor:      parseInt(lookup(row, fieldTotalFloor)),
		BuildingType:    optString(lookup(row, fieldBuildingType)),
		MainUse:         optString(lookup(row, fieldMainUse)),
		Construction:    optString(lookup(row, fieldConstruction)),
		BuildYear:       buildYear(lookup(row, fieldBuildYear)),
		TransactionDate: date,
		TotalPrice:      totalPrice,
		UnitPrice:       convertUnitPrice(lookup(row, fieldUnitPrice)),
		ParkingType:     optString(lookup(row, fieldParkingType)),
		ParkingPrice:    optInt64(parseInt64(lookup(row, fieldParkingPrice))),
		Note:            optString(lookup(row, fieldNote)),
		Source:          source,
		RawData:         row.Serialize(),
		Encoding:        encoding,
	}
	return record, nil
}

// buildYear coerces the completion date (a Minguo digit run like "0850315")
// into a Gregorian year; anything non-numeric stays absent.
func buildYear(raw string) *int {
	date := convertDate(raw)
	if len(date) < 4 {
		return nil
	}
	return parseInt(date[:4])
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optInt64(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}
