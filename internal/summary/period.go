package summary

import (
	"math"
	"strings"
	"time"

	"mediareport/internal/models"
)

// DateRange is a resolved report period; either side may be nil.
type DateRange struct {
	Start *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End   *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
}

// IsEmpty reports whether neither side is set.
func (d DateRange) IsEmpty() bool {
	return d.Start == nil && d.End == nil
}

// Display layouts.
const (
	monthYearLayout = "January 2006"
	fullDateLayout  = "January 2, 2006"
	noPeriod        = "-"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// datePair reads one start/end candidate; it matches when either side is truthy.
func datePair(startPath, endPath []string) accessor[DateRange] {
	return func(r models.Report) (DateRange, bool) {
		startRaw, _ := r.Lookup(startPath...)
		endRaw, _ := r.Lookup(endPath...)

		if !models.Truthy(startRaw) && !models.Truthy(endRaw) {
			return DateRange{}, false
		}

		return DateRange{Start: toTime(startRaw), End: toTime(endRaw)}, true
	}
}

var dateCandidates = []accessor[DateRange]{
	datePair([]string{"startDate"}, []string{"endDate"}),
	datePair([]string{"filters", "startDate"}, []string{"filters", "endDate"}),
	datePair([]string{"formData", "startDate"}, []string{"formData", "endDate"}),
	datePair([]string{"dateRange", "start"}, []string{"dateRange", "end"}),
	datePair([]string{"period", "start"}, []string{"period", "end"}),
}

// ResolveDateRange returns the first date pair the report carries.
func ResolveDateRange(report models.Report) DateRange {
	dr, _ := firstOf(report, dateCandidates...)
	return dr
}

// toTime converts a truthy date value; strings are parsed, numbers are epoch milliseconds.
// Values that cannot be read as a date resolve to nil.
func toTime(v any) *time.Time {
	if !models.Truthy(v) {
		return nil
	}

	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return &parsed
			}
		}
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil
		}

		parsed := time.UnixMilli(int64(t)).UTC()

		return &parsed
	case int64:
		parsed := time.UnixMilli(t).UTC()
		return &parsed
	}

	return nil
}

// FormatTimePeriod renders a period for display.
func FormatTimePeriod(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return noPeriod
	case start != nil && end != nil:
		if start.Year() == end.Year() && start.Month() == end.Month() {
			return start.Format(monthYearLayout)
		}

		return start.Format(fullDateLayout) + " – " + end.Format(fullDateLayout)
	case start != nil:
		return "From " + start.Format(fullDateLayout)
	default:
		return "Until " + end.Format(fullDateLayout)
	}
}

// TimePeriod resolves and formats the report's period.
func TimePeriod(report models.Report) string {
	dr := ResolveDateRange(report)
	return FormatTimePeriod(dr.Start, dr.End)
}
