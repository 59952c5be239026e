// Package summary derives display strings (language, time period, totals) from report records.
package summary

import "mediareport/internal/models"

// accessor reads one candidate value from a report.
type accessor[T any] func(models.Report) (T, bool)

// firstOf tries candidates in order and returns the first hit.
func firstOf[T any](report models.Report, candidates ...accessor[T]) (T, bool) {
	for _, get := range candidates {
		if v, ok := get(report); ok {
			return v, true
		}
	}

	var zero T

	return zero, false
}
