package quiz

import (
	"strings"
	"time"

	"github.com/vytor/vocaquiz/internal/models"
)

const (
	DateModeSingle = "single"
	DateModeRange  = "range"
)

// ParseDateFilter builds a filter from start-screen input. In single mode
// only start is read.
func ParseDateFilter(mode, start, end string) (models.DateFilter, error) {
	from, fromOK := ParseDay(start)
	if mode != DateModeRange {
		if !fromOK {
			return models.DateFilter{}, ErrIncompleteDateRange
		}
		return models.SingleDate(from), nil
	}

	to, toOK := ParseDay(end)
	switch {
	case !fromOK && !toOK:
		return models.DateFilter{}, ErrIncompleteDateRange
	case !fromOK || !toOK:
		return models.DateFilter{}, ErrMissingEndDate
	case from.After(to):
		return models.DateFilter{}, ErrInvalidDateRange
	}
	return models.DateRange(from, to), nil
}

// FilterByDate keeps the records whose upload date parses and falls inside f.
// Records with empty or malformed dates are dropped silently.
func FilterByDate(records []models.VocabRecord, f models.DateFilter) []models.VocabRecord {
	var out []models.VocabRecord
	for _, r := range records {
		d, ok := ParseDay(r.UploadDate)
		if !ok {
			continue
		}
		if f.Contains(d) {
			out = append(out, r)
		}
	}
	return out
}

// ParseDay parses a YYYY-MM-DD date, ignoring surrounding spaces.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
