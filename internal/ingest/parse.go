package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fieldside/squadscout/internal/domain"
)

// Fallbacks applied when a source field is missing or unparsable.
// These match the dataset's historical conventions and must not change
// without a coordinated re-ingestion.
const (
	defaultAge        = 25
	defaultRating     = 75
	defaultSkill      = 50
	defaultFoot       = "Right"
	defaultCountry    = "Unknown"
	minAge, maxAge    = 16, 45
	minRating         = 40
	maxRating         = 99
	minSkill          = 1 // narrower than the Attributes range, kept deliberately
	maxSkill          = 99
	defaultPosition   = domain.PositionCM
	currencyThousands = 1_000
	currencyMillions  = 1_000_000
)

// parseCurrency converts strings like "€115.5M" or "€440K" to integer euros.
// Blank or unparsable input yields 0, never an error.
func parseCurrency(s string) int64 {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "€", ""), ",", ""))
	if clean == "" || clean == "-" {
		return 0
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(clean, "M"):
		multiplier = currencyMillions
		clean = strings.TrimSuffix(clean, "M")
	case strings.HasSuffix(clean, "K"):
		multiplier = currencyThousands
		clean = strings.TrimSuffix(clean, "K")
	}

	number, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}

	return int64(number * float64(multiplier))
}

// parseDate handles both bare years ("2027" becomes Dec 31 of that year)
// and full ISO dates ("2027-06-30"). Blank input yields nil without an
// error; non-blank unparsable input yields nil with an error so the
// caller can warn.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if len(s) == 4 {
		year, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unrecognized date %q", s)
		}
		t := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return &t, nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	return nil, fmt.Errorf("unrecognized date %q", s)
}

// ageFromDOB derives age from a date of birth, subtracting one when the
// birthday has not yet occurred this year, clamped to [16, 45].
// Missing input yields the default age; unparsable input yields the
// default age with an error so the caller can warn.
func ageFromDOB(s string, now time.Time) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultAge, nil
	}

	dob, err := time.Parse("2006-01-02", s)
	if err != nil {
		return defaultAge, fmt.Errorf("unrecognized date of birth %q", s)
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}

	return clamp(age, minAge, maxAge), nil
}

// safeInt converts loosely formatted numeric fields, truncating decimals.
// Blank, whitespace-only or unparsable input yields the supplied default.
func safeInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}

	return int(f)
}

// primaryPosition takes the first code of a comma-separated position list,
// defaulting to CM when the code is unknown or missing
func primaryPosition(s string) domain.Position {
	primary := strings.TrimSpace(strings.SplitN(s, ",", 2)[0])
	if pos, ok := domain.ParsePosition(primary); ok {
		return pos
	}
	return defaultPosition
}

// deriveSkill combines two related source columns into one score: the max
// of both when the primary column is present and positive, else a flat 50
func deriveSkill(primary, secondary string) int {
	if safeInt(primary, 0) <= 0 {
		return defaultSkill
	}
	return max(safeInt(primary, defaultSkill), safeInt(secondary, defaultSkill))
}

// clampSkill narrows a skill score into [1, 99]
func clampSkill(v int) int {
	return clamp(v, minSkill, maxSkill)
}

// clampRating coerces an overall/potential source field into [40, 99]
func clampRating(s string) int {
	return clamp(safeInt(s, defaultRating), minRating, maxRating)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
