package domain

// Region is one administrative city/county the catalog iterates. Code is the
// upstream's single-letter file prefix, Name the display name every district
// label gets prefixed with.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
