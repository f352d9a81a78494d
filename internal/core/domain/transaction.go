package domain

// TransactionRecord is the canonical shape of one disclosed real-estate
// transaction after normalization. Optional source fields are pointers so
// that "absent" survives the round trip into the database as NULL.
type TransactionRecord struct {
	District        string   `json:"district" db:"district"`
	TransactionType string   `json:"transaction_type" db:"transaction_type"`
	Address         string   `json:"address" db:"address"`
	ProjectName     *string  `json:"project_name,omitempty" db:"project_name"`
	LandArea        *float64 `json:"land_area,omitempty" db:"land_area"`
	BuildingArea    *float64 `json:"building_area,omitempty" db:"building_area"`
	Floor           *string  `json:"floor,omitempty" db:"floor"`
	TotalFloor      *int     `json:"total_floor,omitempty" db:"total_floor"`
	BuildingType    *string  `json:"building_type,omitempty" db:"building_type"`
	MainUse         *string  `json:"main_use,omitempty" db:"main_use"`
	Construction    *string  `json:"construction,omitempty" db:"construction"`
	BuildYear       *int     `json:"build_year,omitempty" db:"build_year"`
	TransactionDate string   `json:"transaction_date" db:"transaction_date"`
	TotalPrice      int64    `json:"total_price" db:"total_price"`
	UnitPrice       *int64   `json:"unit_price,omitempty" db:"unit_price"`
	ParkingType     *string  `json:"parking_type,omitempty" db:"parking_type"`
	ParkingPrice    *int64   `json:"parking_price,omitempty" db:"parking_price"`
	Note            *string  `json:"note,omitempty" db:"note"`

	// Provenance: which region+season produced the record, the verbatim
	// source row, and which text decoding recovered it.
	Source   string `json:"source" db:"source"`
	RawData  string `json:"raw_data" db:"raw_data"`
	Encoding string `json:"encoding" db:"encoding"`
}

// NaturalKey is the four-field tuple that identifies a transaction for
// deduplication. Two records sharing all four values are the same disclosure.
type NaturalKey struct {
	District        string
	Address         string
	TransactionDate string
	TotalPrice      int64
}

// Key returns the record's natural key.
func (r TransactionRecord) Key() NaturalKey {
	return NaturalKey{
		District:        r.District,
		Address:         r.Address,
		TransactionDate: r.TransactionDate,
		TotalPrice:      r.TotalPrice,
	}
}

// TransactionFilter narrows read queries from the reporting layer.
type TransactionFilter struct {
	District string
	Season   string
	Limit    int
}

// DistrictStats is one row of the per-district aggregate used by the
// reporting layer.
type DistrictStats struct {
	District     string  `json:"district" db:"district"`
	Count        int64   `json:"count" db:"count"`
	TotalAmount  int64   `json:"total_amount" db:"total_amount"`
	AvgUnitPrice float64 `json:"avg_unit_price" db:"avg_unit_price"`
}
