package domain

import "encoding/json"

// RawRow is one parsed CSV row keyed by column header. The pipeline never
// trusts a raw value until the normalizer has looked at it.
type RawRow map[string]string

// Serialize renders the row verbatim for the audit trail. The result is
// stored alongside the normalized record and never parsed again.
func (r RawRow) Serialize() string {
	b, err := json.Marshal(r)
	if err != nil {
		// map[string]string cannot fail to marshal; keep the record anyway.
		return "{}"
	}
	return string(b)
}
