package models

// ExecutiveSummaryKey is the module key that always takes the first content pages.
const ExecutiveSummaryKey = "executiveSummary"

// MediaModules lists the module keys of one media type in backend order.
type MediaModules struct {
	MediaType string   `json:"mediaType" yaml:"media_type"`
	Modules   []string `json:"modules" yaml:"modules"`
}

// ModulesData maps media types to their modules, preserving the backend's key order.
// Module content is opaque here; only names matter for indexing.
type ModulesData []MediaModules

// Get returns the module keys for mediaType.
func (m ModulesData) Get(mediaType string) ([]string, bool) {
	for _, mm := range m {
		if mm.MediaType == mediaType {
			return mm.Modules, true
		}
	}

	return nil, false
}

// MediaTypes returns the media types in stored order.
func (m ModulesData) MediaTypes() []string {
	out := make([]string, 0, len(m))
	for _, mm := range m {
		out = append(out, mm.MediaType)
	}

	return out
}

// PageEntry identifies one content page.
type PageEntry struct {
	MediaType string `json:"mediaType" yaml:"media_type"`
	Module    string `json:"module" yaml:"module"`
	Page      int    `json:"page" yaml:"page"`
}

// Key returns the "mediaType:module" lookup key.
func (p PageEntry) Key() string {
	return PageKey(p.MediaType, p.Module)
}

// PageKey builds the lookup key for a (mediaType, module) pair.
func PageKey(mediaType, module string) string {
	return mediaType + ":" + module
}
