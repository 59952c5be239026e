// Package pagination assigns page numbers to report modules and builds the contents listing.
package pagination

import (
	"mediareport/internal/models"
)

// Fixed pages ahead of the module pages.
const (
	CoverPage    = 1
	ContentsPage = 2
	// FirstModulePage is the page number of the first module.
	FirstModulePage = 3
)

// PageIndex is the page assignment for one report render.
type PageIndex struct {
	// Ordered lists every module page: executive summaries first, then the rest in encounter order.
	Ordered []models.PageEntry
	// execCount is how many leading entries are executive summaries.
	execCount int
	byKey     map[string]int
}

// BuildPageIndex numbers every module of the given media types.
// Media types absent from modules are skipped; module content is never inspected.
func BuildPageIndex(mediaTypes []string, modules models.ModulesData) *PageIndex {
	var execPages, otherPages []models.PageEntry

	for _, mt := range mediaTypes {
		keys, ok := modules.Get(mt)
		if !ok {
			continue
		}

		for _, key := range keys {
			entry := models.PageEntry{MediaType: mt, Module: key}
			if key == models.ExecutiveSummaryKey {
				execPages = append(execPages, entry)
			} else {
				otherPages = append(otherPages, entry)
			}
		}
	}

	ordered := make([]models.PageEntry, 0, len(execPages)+len(otherPages))
	ordered = append(ordered, execPages...)
	ordered = append(ordered, otherPages...)

	idx := &PageIndex{
		Ordered:   ordered,
		execCount: len(execPages),
		byKey:     make(map[string]int, len(ordered)),
	}

	for i := range idx.Ordered {
		idx.Ordered[i].Page = FirstModulePage + i
		idx.byKey[idx.Ordered[i].Key()] = idx.Ordered[i].Page
	}

	return idx
}

// Page returns the page number assigned to (mediaType, module).
func (p *PageIndex) Page(mediaType, module string) (int, bool) {
	page, ok := p.byKey[models.PageKey(mediaType, module)]
	return page, ok
}

// Entry returns the module shown on page, if page is a module page.
func (p *PageIndex) Entry(page int) (models.PageEntry, bool) {
	i := page - FirstModulePage
	if i < 0 || i >= len(p.Ordered) {
		return models.PageEntry{}, false
	}

	return p.Ordered[i], true
}

// ExecutivePages returns the executive summary entries.
func (p *PageIndex) ExecutivePages() []models.PageEntry {
	return p.Ordered[:p.execCount]
}

// OtherPages returns the non-executive entries in encounter order.
func (p *PageIndex) OtherPages() []models.PageEntry {
	return p.Ordered[p.execCount:]
}

// PageMap returns a copy of the "mediaType:module" -> page lookup.
func (p *PageIndex) PageMap() map[string]int {
	out := make(map[string]int, len(p.byKey))
	for k, v := range p.byKey {
		out[k] = v
	}

	return out
}

// Len is the number of module pages.
func (p *PageIndex) Len() int {
	return len(p.Ordered)
}

// TotalPages counts the cover, the contents page and every module page.
func (p *PageIndex) TotalPages() int {
	return ContentsPage + len(p.Ordered)
}
