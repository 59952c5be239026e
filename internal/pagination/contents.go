package pagination

import (
	"sort"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mediareport/internal/models"
)

// Row is one line of the contents listing.
type Row struct {
	MediaType string `json:"mediaType" yaml:"media_type"`
	Module    string `json:"module" yaml:"module"`
	Label     string `json:"label" yaml:"label"`
	Page      int    `json:"page" yaml:"page"`
}

// Section groups a media type's non-executive rows.
type Section struct {
	MediaType string `json:"mediaType" yaml:"media_type"`
	Label     string `json:"label" yaml:"label"`
	Rows      []Row  `json:"rows" yaml:"rows"`
}

// Contents is the display model of the contents page.
//
// Section rows are sorted by label with a case-insensitive collation, while page numbers keep the
// module encounter order, so numbers down a section need not increase.
type Contents struct {
	Executive []Row     `json:"executive" yaml:"executive"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// Navigator is called with the page number of an activated contents row.
type Navigator func(page int)

// BuildContents derives the contents listing from a page index.
func BuildContents(index *PageIndex, labels Labels) Contents {
	c := Contents{
		Executive: lo.Map(index.ExecutivePages(), func(e models.PageEntry, _ int) Row {
			return toRow(e, labels)
		}),
	}

	// A collator is not safe for concurrent use.
	col := collate.New(language.English, collate.IgnoreCase)

	others := index.OtherPages()
	grouped := lo.GroupBy(others, func(e models.PageEntry) string { return e.MediaType })
	order := lo.Uniq(lo.Map(others, func(e models.PageEntry, _ int) string { return e.MediaType }))

	for _, mt := range order {
		rows := lo.Map(grouped[mt], func(e models.PageEntry, _ int) Row { return toRow(e, labels) })
		sort.SliceStable(rows, func(i, j int) bool {
			return col.CompareString(rows[i].Label, rows[j].Label) < 0
		})

		c.Sections = append(c.Sections, Section{
			MediaType: mt,
			Label:     labels.MediaType(mt),
			Rows:      rows,
		})
	}

	return c
}

func toRow(e models.PageEntry, labels Labels) Row {
	return Row{
		MediaType: e.MediaType,
		Module:    e.Module,
		Label:     labels.Module(e.Module),
		Page:      e.Page,
	}
}

// Rows returns every row in display order.
func (c Contents) Rows() []Row {
	out := append([]Row(nil), c.Executive...)
	for _, s := range c.Sections {
		out = append(out, s.Rows...)
	}

	return out
}

// IsEmpty reports whether the listing has no rows.
func (c Contents) IsEmpty() bool {
	return len(c.Executive) == 0 && len(c.Sections) == 0
}

// Activate sends the row's page to navigate.
func (c Contents) Activate(row Row, navigate Navigator) {
	if navigate == nil || row.Page < FirstModulePage {
		return
	}

	navigate(row.Page)
}

// HandleKey activates row for the keys that act like a click on a focused row.
// It reports whether the key was handled.
func (c Contents) HandleKey(row Row, key string, navigate Navigator) bool {
	switch key {
	case "Enter", " ", "Space", "Spacebar":
		c.Activate(row, navigate)
		return true
	default:
		return false
	}
}
