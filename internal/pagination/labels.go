package pagination

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mediareport/internal/models"
)

// defaultModuleLabels maps module keys to display names.
var defaultModuleLabels = map[string]string{
	models.ExecutiveSummaryKey: "Executive Summary",
	"mediaSummary":             "Media Summary",
	"keywordTrends":            "Keyword Trends",
	"sentiment":                "Sentiment Analysis",
	"sentimentTrend":           "Sentiment Trend",
	"topSources":               "Top Sources",
	"topJournalists":           "Top Journalists",
	"topAuthors":               "Top Authors",
	"topStations":              "Top Stations",
	"topPublications":          "Top Publications",
	"topHashtags":              "Top Hashtags",
	"topMentions":              "Top Mentions",
	"volumeTrend":              "Volume Over Time",
	"reachTrend":               "Reach Over Time",
	"aveTrend":                 "AVE Over Time",
	"shareOfVoice":             "Share of Voice",
	"geographicDistribution":   "Geographic Distribution",
	"languageDistribution":     "Language Distribution",
	"themes":                   "Key Themes",
	"topStories":               "Top Stories",
	"spokespeople":             "Spokespeople",
	"competitors":              "Competitor Analysis",
	"platformBreakdown":        "Platform Breakdown",
	"engagement":               "Engagement",
}

// defaultMediaTypeLabels maps media bucket keys to section headings.
var defaultMediaTypeLabels = map[string]string{
	models.MediaArticles:   "Online Articles",
	models.MediaPrintMedia: "Print Media",
	models.MediaBroadcast:  "Broadcast",
	models.MediaPosts:      "Social Media",
}

// Labels resolves display names for modules and media types.
type Labels struct {
	Modules    map[string]string `yaml:"modules"`
	MediaTypes map[string]string `yaml:"media_types"`
}

// DefaultLabels returns a copy of the built-in label tables.
func DefaultLabels() Labels {
	return Labels{
		Modules:    copyMap(defaultModuleLabels),
		MediaTypes: copyMap(defaultMediaTypeLabels),
	}
}

// Merge returns l with the entries of override replacing or extending it.
func (l Labels) Merge(override Labels) Labels {
	out := Labels{Modules: copyMap(l.Modules), MediaTypes: copyMap(l.MediaTypes)}

	for k, v := range override.Modules {
		out.Modules[k] = v
	}

	for k, v := range override.MediaTypes {
		out.MediaTypes[k] = v
	}

	return out
}

// Module returns the label for a module key, or the key itself.
func (l Labels) Module(key string) string {
	if v, ok := l.Modules[key]; ok && v != "" {
		return v
	}

	return key
}

// MediaType returns the label for a media type key, or the key itself.
func (l Labels) MediaType(key string) string {
	if v, ok := l.MediaTypes[key]; ok && v != "" {
		return v
	}

	return key
}

// LoadLabels reads label overrides from a YAML file and merges them over the defaults.
func LoadLabels(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Labels{}, fmt.Errorf("failed to read labels file: %w", err)
	}

	var override Labels
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Labels{}, fmt.Errorf("failed to parse labels YAML: %w", err)
	}

	return DefaultLabels().Merge(override), nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
