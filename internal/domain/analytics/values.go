package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"

	"vesselwatch/internal/errs"
)

const (
	// DateLayout is the canonical text form of every stored and normalized date.
	// Lexical comparison of these strings matches chronological order.
	DateLayout = "2006-01-02"
	// TimestampLayout is the text form of TransponderPing.time. Fractional
	// seconds after the seconds field are accepted when parsing.
	TimestampLayout = "2006-01-02T15:04:05"

	// inputDateLayout accepts single-digit months and days from callers.
	inputDateLayout = "2006-1-2"
)

// ParseInputDate parses a caller-supplied date. Surrounding whitespace and
// unpadded month/day are tolerated; anything else is rejected.
func ParseInputDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errs.Validationf(MsgDateRangeRequired)
	}
	t, err := time.Parse(inputDateLayout, value)
	if err != nil {
		return time.Time{}, errs.Validationf(MsgInvalidDate)
	}
	return t, nil
}

// NormalizeDate re-formats a caller-supplied date into DateLayout.
func NormalizeDate(raw string) (string, error) {
	t, err := ParseInputDate(raw)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// ParseStoredDate parses a date column. field names the column for the error.
func ParseStoredDate(field string, raw *string) (time.Time, error) {
	if raw == nil {
		return time.Time{}, errs.DataQualityf("%s is null", field)
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return time.Time{}, errs.DataQualityf("%s %q is not a YYYY-MM-DD date", field, *raw)
	}
	return t, nil
}

// ParseStoredTimestamp parses a timestamp column. A bare date reads as midnight.
func ParseStoredTimestamp(field string, raw *string) (time.Time, error) {
	if raw == nil {
		return time.Time{}, errs.DataQualityf("%s is null", field)
	}
	value := strings.TrimSpace(*raw)
	if t, err := time.Parse(TimestampLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, errs.DataQualityf("%s %q is not a YYYY-MM-DDTHH:MI:SS timestamp", field, *raw)
}

// ParseNumeric casts a numeric-as-text column. Non-numeric and non-finite
// values are data-quality errors, never zero.
func ParseNumeric(field string, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errs.DataQualityf("%s %q is not numeric", field, raw)
	}
	return value, nil
}

// DwellValue casts a dwell column. ok is false for NULL, which SQL aggregates skip.
func DwellValue(raw *string) (value float64, ok bool, err error) {
	if raw == nil {
		return 0, false, nil
	}
	value, err = ParseNumeric("dwell", *raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
