package lvrfetcher

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding labels recorded in each record's audit trail.
const (
	EncodingUTF8 = "utf-8"
	EncodingBig5 = "big5"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText recovers text from a payload of unknown vintage. Recent exports
// are UTF-8; older ones are Big5. The heuristic: decode as UTF-8 first, and
// if the result contains the replacement marker, re-decode the same bytes as
// Big5. A payload that legitimately contains U+FFFD after a correct UTF-8
// decode is mis-routed to the Big5 path; the returned label makes that
// diagnosable after the fact.
func decodeText(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	text, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err == nil && !strings.ContainsRune(string(text), '�') {
		return string(text), EncodingUTF8, nil
	}

	text, err = traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", err
	}
	return string(text), EncodingBig5, nil
}
