package summary

import (
	"fmt"
	"strings"

	"mediareport/internal/models"
)

// DefaultLanguage is reported when a report names no languages.
const DefaultLanguage = "English"

const maxListedLanguages = 3

// languagesAt returns a non-empty language list stored at path.
func languagesAt(path ...string) accessor[[]string] {
	return func(r models.Report) ([]string, bool) {
		raw, ok := r.Lookup(path...)
		if !ok {
			return nil, false
		}

		var out []string

		switch list := raw.(type) {
		case []any:
			for _, v := range list {
				out = append(out, fmt.Sprint(v))
			}
		case []string:
			out = list
		default:
			return nil, false
		}

		return out, len(out) > 0
	}
}

var languageCandidates = []accessor[[]string]{
	languagesAt("languages"),
	languagesAt("filters", "languages"),
	languagesAt("formData", "languages"),
}

// ReportLanguages returns the first non-empty language list, without merging candidates.
func ReportLanguages(report models.Report) []string {
	langs, _ := firstOf(report, languageCandidates...)
	return langs
}

// Languages summarizes the report's languages, e.g. "English, French +2 more".
func Languages(report models.Report) string {
	return FormatLanguages(ReportLanguages(report))
}

// FormatLanguages renders a language list for display.
func FormatLanguages(langs []string) string {
	switch {
	case len(langs) == 0:
		return DefaultLanguage
	case len(langs) <= maxListedLanguages:
		return strings.Join(langs, ", ")
	default:
		return fmt.Sprintf("%s +%d more", strings.Join(langs[:2], ", "), len(langs)-2)
	}
}
