package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// One ping (坪), the local area unit, is exactly 3.30579 square meters.
var sqmPerPing = decimal.NewFromFloat(3.30579)

// convertDate turns a raw disclosure date into Gregorian YYYY-MM-DD, or ""
// when the value is unusable. Source dates are Minguo-calendar digit runs
// like "1140115" (year 114 = 2025); a few releases already carry Gregorian
// 8-digit dates, recognizable by their 19xx/20xx prefix.
func convertDate(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) < 5 {
		return ""
	}

	var year int
	if len(s) == 8 && (strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20")) {
		year, _ = strconv.Atoi(s[:4])
	} else {
		minguo, err := strconv.Atoi(s[:len(s)-4])
		if err != nil {
			return ""
		}
		year = minguo + 1911
	}

	month, _ := strconv.Atoi(s[len(s)-4 : len(s)-2])
	day, _ := strconv.Atoi(s[len(s)-2:])
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1911 || year > 2100 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// convertArea converts square meters to ping, rounded to 2 decimal places.
// Non-numeric and non-positive inputs mean "absent", not zero.
func convertArea(raw string) *float64 {
	d, err := decimal.NewFromString(cleanNumber(raw))
	if err != nil || !d.IsPositive() {
		return nil
	}
	ping, _ := d.Div(sqmPerPing).Round(2).Float64()
	return &ping
}

// convertUnitPrice converts a per-square-meter price to per-ping, rounded to
// the nearest integer. Missing or zero input means "absent".
func convertUnitPrice(raw string) *int64 {
	d, err := decimal.NewFromString(cleanNumber(raw))
	if err != nil || !d.IsPositive() {
		return nil
	}
	perPing := d.Mul(sqmPerPing).Round(0).IntPart()
	return &perPing
}

// parseInt is the best-effort integer coercion used for descriptive numeric
// fields; failures yield "absent".
func parseInt(raw string) *int {
	n, err := strconv.Atoi(cleanNumber(raw))
	if err != nil {
		return nil
	}
	return &n
}

func parseInt64(raw string) int64 {
	n, err := strconv.ParseInt(cleanNumber(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func cleanNumber(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
}
