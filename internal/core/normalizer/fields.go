package normalizer

import "lvr-ingest/internal/core/domain"

type fieldKey string

const (
	fieldDistrict     fieldKey = "district"
	fieldTxType       fieldKey = "transaction_type"
	fieldAddress      fieldKey = "address"
	fieldProjectName  fieldKey = "project_name"
	fieldLandArea     fieldKey = "land_area"
	fieldBuildingArea fieldKey = "building_area"
	fieldFloor        fieldKey = "floor"
	fieldTotalFloor   fieldKey = "total_floor"
	fieldBuildingType fieldKey = "building_type"
	fieldMainUse      fieldKey = "main_use"
	fieldConstruction fieldKey = "construction"
	fieldBuildYear    fieldKey = "build_year"
	fieldTxDate       fieldKey = "transaction_date"
	fieldTotalPrice   fieldKey = "total_price"
	fieldUnitPrice    fieldKey = "unit_price"
	fieldParkingType  fieldKey = "parking_type"
	fieldParkingPrice fieldKey = "parking_price"
	fieldNote         fieldKey = "note"
)

// headerCandidates maps each semantic field to the column spellings the
// source has used over the years, most recent first. Older releases put the
// unit in full-width parentheses, newer ones spell it inline. Supporting a
// new vintage means appending one spelling here, nothing else.
var headerCandidates = map[fieldKey][]string{
	fieldDistrict:     {"鄉鎮市區", "鄉鎮市區名稱"},
	fieldTxType:       {"交易標的", "交易標的名稱"},
	fieldAddress:      {"土地位置建物門牌", "土地區段位置建物區段門牌", "土地區段位置或建物區門牌"},
	fieldProjectName:  {"建案名稱", "社區名稱"},
	fieldLandArea:     {"土地移轉總面積平方公尺", "土地移轉總面積(平方公尺)"},
	fieldBuildingArea: {"建物移轉總面積平方公尺", "建物移轉總面積(平方公尺)"},
	fieldFloor:        {"移轉層次", "移轉層次項目"},
	fieldTotalFloor:   {"總樓層數", "總層數"},
	fieldBuildingType: {"建物型態", "建物形態"},
	fieldMainUse:      {"主要用途", "主要用途別"},
	fieldConstruction: {"主要建材", "主要建材別"},
	fieldBuildYear:    {"建築完成年月", "建築完成日期"},
	fieldTxDate:       {"交易年月日", "交易日期"},
	fieldTotalPrice:   {"總價元", "總價(元)"},
	fieldUnitPrice:    {"單價元平方公尺", "單價(元/平方公尺)", "單價每平方公尺"},
	fieldParkingType:  {"車位類別", "車位類別名稱"},
	fieldParkingPrice: {"車位總價元", "車位總價(元)"},
	fieldNote:         {"備註", "備註事項"},
}

// lookup returns the first present, non-empty value among the field's
// candidate headers.
func lookup(row domain.RawRow, field fieldKey) string {
	for _, header := range headerCandidates[field] {
		if v, ok := row[header]; ok && v != "" {
			return v
		}
	}
	return ""
}
