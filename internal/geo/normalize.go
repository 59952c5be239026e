package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases maps folded spellings to canonical country names.
var aliases = map[string]string{
	"ivory coast":                      "Côte d'Ivoire",
	"cote d'ivoire":                    "Côte d'Ivoire",
	"cote divoire":                     "Côte d'Ivoire",
	"drc":                              "DR Congo",
	"dr congo":                         "DR Congo",
	"d.r. congo":                       "DR Congo",
	"democratic republic of congo":     "DR Congo",
	"democratic republic of the congo": "DR Congo",
	"congo-kinshasa":                   "DR Congo",
	"congo-brazzaville":                "Republic of the Congo",
	"republic of congo":                "Republic of the Congo",
	"usa":                              "United States",
	"us":                               "United States",
	"u.s.":                             "United States",
	"u.s.a.":                           "United States",
	"united states of america":         "United States",
	"america":                          "United States",
	"uk":                               "United Kingdom",
	"u.k.":                             "United Kingdom",
	"great britain":                    "United Kingdom",
	"britain":                          "United Kingdom",
	"uae":                              "United Arab Emirates",
	"u.a.e.":                           "United Arab Emirates",
	"emirates":                         "United Arab Emirates",
	"swaziland":                        "Eswatini",
	"czech republic":                   "Czechia",
	"burma":                            "Myanmar",
	"cabo verde":                       "Cape Verde",
	"sao tome and principe":            "São Tomé and Príncipe",
	"the gambia":                       "Gambia",
	"korea":                            "South Korea",
	"republic of korea":                "South Korea",
	"holland":                          "Netherlands",
	"the netherlands":                  "Netherlands",
	"turkiye":                          "Turkey",
	"russian federation":               "Russia",
	"macedonia":                        "North Macedonia",
}

// NormalizeCountry trims name and resolves known aliases.
// Unknown names come back trimmed with their case preserved.
func NormalizeCountry(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := aliases[foldKey(trimmed)]; ok {
		return canonical
	}

	return trimmed
}

// foldKey lowercases s, strips diacritics and straightens typographic apostrophes.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.ReplaceAll(folded, "’", "'")

	return strings.ToLower(strings.TrimSpace(folded))
}
