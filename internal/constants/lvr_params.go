package constants

import "lvr-ingest/internal/core/domain"

// Upstream download endpoint. The season and the lowercased region code are
// substituted into DownloadPathTemplate by the fetcher adapter.
const (
	DefaultBaseURL       = "https://plvr.land.moi.gov.tw"
	DownloadPathTemplate = "/DownloadSeason?season=%s&fileName=%s_lvr_land_a.csv"
)

// DefaultUserAgent identifies requests the way a desktop browser would; the
// upstream portal rejects obviously non-browser clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTransactionType labels records whose source row carries no
// transaction-nature column.
const DefaultTransactionType = "房地(土地+建物)"

// GetRegionCatalog returns the fixed, ordered list of source regions. The
// orchestrator iterates this order on every run; the single-letter codes are
// the upstream's own file-name prefixes.
func GetRegionCatalog() []domain.Region {
	return []domain.Region{
		{Code: "A", Name: "臺北市"},
		{Code: "F", Name: "新北市"},
		{Code: "H", Name: "桃園市"},
		{Code: "B", Name: "臺中市"},
		{Code: "D", Name: "臺南市"},
		{Code: "E", Name: "高雄市"},
		{Code: "C", Name: "基隆市"},
		{Code: "G", Name: "宜蘭縣"},
		{Code: "J", Name: "新竹縣"},
		{Code: "O", Name: "新竹市"},
		{Code: "K", Name: "苗栗縣"},
		{Code: "M", Name: "南投縣"},
		{Code: "N", Name: "彰化縣"},
		{Code: "P", Name: "雲林縣"},
		{Code: "I", Name: "嘉義市"},
		{Code: "Q", Name: "嘉義縣"},
		{Code: "T", Name: "屏東縣"},
		{Code: "U", Name: "花蓮縣"},
		{Code: "V", Name: "臺東縣"},
		{Code: "X", Name: "澎湖縣"},
		{Code: "W", Name: "金門縣"},
		{Code: "Z", Name: "連江縣"},
	}
}
