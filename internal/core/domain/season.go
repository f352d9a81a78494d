package domain

import (
	"fmt"
	"time"
)

// MinguoOffset is the fixed difference between the Gregorian year and the
// Republic-of-China calendar year used throughout the source data.
const MinguoOffset = 1911

// CurrentSeason derives the latest reporting period whose filing window has
// plausibly closed by now. Months 1-3 still point at the previous local
// year's Q4; after that each calendar quarter maps to the one before it.
func CurrentSeason(now time.Time) string {
	year := now.Year() - MinguoOffset
	var quarter int
	switch m := int(now.Month()); {
	case m <= 3:
		year--
		quarter = 4
	case m <= 6:
		quarter = 1
	case m <= 9:
		quarter = 2
	default:
		quarter = 3
	}
	return fmt.Sprintf("%dS%d", year, quarter)
}

// ResolveSeason picks the target period for a run. An explicit override wins.
// A (year, quarter) pair is used when both lie in range; out-of-range input
// silently falls back to the derived current season rather than failing.
func ResolveSeason(override string, year, quarter int, now time.Time) string {
	if override != "" {
		return override
	}
	if year >= 1 && year <= 200 && quarter >= 1 && quarter <= 4 {
		return fmt.Sprintf("%dS%d", year, quarter)
	}
	return CurrentSeason(now)
}
