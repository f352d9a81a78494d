package normalizer

import (
	"regexp"
	"strings"
)

// District extraction patterns for rows without an explicit district column.
// The strict pattern wants a parent city/county immediately followed by a
// district/township/borough; the loose one settles for any such suffix.
var (
	strictDistrictRe = regexp.MustCompile(`\p{Han}{1,3}[市縣]\p{Han}{1,3}[鄉鎮市區]`)
	looseDistrictRe  = regexp.MustCompile(`\p{Han}{1,3}[鄉鎮市區]`)
)

// extractDistrict resolves the canonical fully-qualified district label for a
// row. The explicit column wins when present; otherwise the combined address
// field is mined with the two patterns above. Whatever was found (possibly
// nothing) is prefixed with the region's display name, unless the extracted
// text already starts with it.
func extractDistrict(explicit, address, regionName string) string {
	district := strings.TrimSpace(explicit)
	if district == "" {
		if m := strictDistrictRe.FindString(address); m != "" {
			district = m
		} else if m := looseDistrictRe.FindString(address); m != "" {
			district = m
		}
	}
	if strings.HasPrefix(district, regionName) {
		return district
	}
	return regionName + district
}
