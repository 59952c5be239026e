package geo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"mediareport/internal/models"
)

const (
	// globalContinentThreshold is the continent count at which a list reads as "Global".
	globalContinentThreshold = 3
	// maxListedCountries is the largest list returned verbatim.
	maxListedCountries = 4
	// rankedRegions is how many regions are named when several match.
	rankedRegions = 2
	// fallbackCountries is how many countries are named when nothing classifies.
	fallbackCountries = 3
)

// SummarizeCountriesToRegion reduces a country list to a short region label.
// fallback is used for an empty list; a fallback of "global" (any case) always wins.
func SummarizeCountriesToRegion(countries []string, fallback string) string {
	fallback = strings.TrimSpace(fallback)
	if strings.EqualFold(fallback, Global) {
		return Global
	}

	normalized := lo.Uniq(lo.FilterMap(countries, func(c string, _ int) (string, bool) {
		n := NormalizeCountry(c)
		return n, n != ""
	}))

	switch len(normalized) {
	case 0:
		if fallback != "" {
			return fallback
		}

		return Global
	case 1:
		return normalized[0]
	}

	continents := lo.Uniq(lo.FilterMap(normalized, func(c string, _ int) (string, bool) {
		cont := ContinentOf(c)
		return cont, cont != ""
	}))

	if len(continents) >= globalContinentThreshold {
		return Global
	}

	if len(normalized) <= maxListedCountries {
		return strings.Join(normalized, ", ")
	}

	if name, ok := singleRegion(normalized); ok {
		return name
	}

	if len(continents) == 1 && lo.EveryBy(normalized, func(c string) bool { return ContinentOf(c) != "" }) {
		return continents[0]
	}

	if label, ok := rankRegions(normalized); ok {
		return label
	}

	label := strings.Join(normalized[:min(fallbackCountries, len(normalized))], ", ")
	if rest := len(normalized) - fallbackCountries; rest > 0 {
		label += fmt.Sprintf(" + %d more", rest)
	}

	return label
}

// singleRegion returns the one sub-region that holds every country.
func singleRegion(countries []string) (string, bool) {
	var matches []string

	for _, r := range subRegions() {
		if lo.EveryBy(countries, r.set.has) {
			matches = append(matches, r.name)
		}
	}

	if len(matches) == 1 {
		return matches[0], true
	}

	return "", false
}

// rankRegions names the top sub-regions by matching country count.
func rankRegions(countries []string) (string, bool) {
	type regionCount struct {
		name  string
		count int
	}

	var counts []regionCount

	for _, r := range subRegions() {
		n := lo.CountBy(countries, r.set.has)
		if n > 0 {
			counts = append(counts, regionCount{name: r.name, count: n})
		}
	}

	if len(counts) == 0 {
		return "", false
	}

	// Stable so equal counts keep declaration order.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	top := counts[:min(rankedRegions, len(counts))]
	label := strings.Join(lo.Map(top, func(rc regionCount, _ int) string { return rc.name }), " + ")

	if rest := len(counts) - len(top); rest > 0 {
		label += fmt.Sprintf(" + %d more", rest)
	}

	return label, true
}

// RegionFromReport summarizes the report's scope, falling back to its region fields.
func RegionFromReport(report models.Report) string {
	var countries []string

	if raw, ok := report.Lookup("scope"); ok {
		if list, isList := raw.([]any); isList {
			for _, v := range list {
				if s, isStr := v.(string); isStr {
					countries = append(countries, s)
				}
			}
		} else if list, isStrList := raw.([]string); isStrList {
			countries = list
		}
	}

	fallback := report.String("region")
	if fallback == "" {
		fallback = report.String("filters", "region")
	}

	return SummarizeCountriesToRegion(countries, fallback)
}
