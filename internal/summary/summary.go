package summary

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mediareport/internal/aggregator"
	"mediareport/internal/geo"
	"mediareport/internal/models"
)

// Summary holds the display values shown on a report's contents screen.
type Summary struct {
	Totals     models.Totals `json:"totals" yaml:"totals"`
	Volume     string        `json:"volume" yaml:"volume"`
	Reach      string        `json:"reach" yaml:"reach"`
	AVE        string        `json:"ave" yaml:"ave"`
	Region     string        `json:"region" yaml:"region"`
	Language   string        `json:"language" yaml:"language"`
	TimePeriod string        `json:"timePeriod" yaml:"time_period"`
	DateRange  DateRange     `json:"dateRange" yaml:"date_range"`
}

// Build computes every summary value for report.
func Build(report models.Report) Summary {
	totals := aggregator.Aggregate(report)
	dr := ResolveDateRange(report)

	return Summary{
		Totals:     totals,
		Volume:     FormatCount(totals.Volume),
		Reach:      FormatCount(totals.Reach),
		AVE:        FormatAmount(totals.AVE),
		Region:     geo.RegionFromReport(report),
		Language:   Languages(report),
		TimePeriod: FormatTimePeriod(dr.Start, dr.End),
		DateRange:  dr,
	}
}

var printer = message.NewPrinter(language.English)

// FormatCount renders a whole-number metric with grouping, e.g. 1,234,567.
func FormatCount(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// FormatAmount renders a monetary metric with two decimals and grouping.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}
