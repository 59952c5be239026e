package formatter

import (
	"strconv"
	"strings"

	"mediareport/internal/models"
	"mediareport/internal/pagination"
	"mediareport/internal/report"
	"mediareport/internal/summary"
)

// RenderView renders the cover, the summary table and the contents listing of v.
func RenderView(v *report.View) string {
	lines := []string{"# " + v.Cover.Title, ""}

	if v.Cover.Organization != "" {
		lines = append(lines, "**"+v.Cover.Organization+"**", "")
	}

	lines = append(lines, "_"+v.Cover.TimePeriod+"_", "", "## Summary", "")
	lines = append(lines, SummaryLines(v.Summary)...)
	lines = append(lines, "", "## Contents", "")
	lines = append(lines, ContentsLines(v.Contents, v.Labels)...)

	return strings.Join(lines, "\n") + "\n"
}

// SummaryLines renders the summary values as a two-column table.
func SummaryLines(s summary.Summary) []string {
	return RenderTable([]string{"Metric", "Value"}, [][]string{
		{"Volume", s.Volume},
		{"Reach", s.Reach},
		{"AVE", s.AVE},
		{"Region", s.Region},
		{"Language", s.Language},
		{"Time Period", s.TimePeriod},
	})
}

// ContentsLines renders the executive summaries and one table per media section.
// Headings absent from c are resolved through labels, or the defaults when labels is empty.
func ContentsLines(c pagination.Contents, labels pagination.Labels) []string {
	if c.IsEmpty() {
		return []string{"_No modules._"}
	}

	var lines []string

	if len(c.Executive) > 0 {
		sectionLabels := make(map[string]string, len(c.Sections))
		for _, s := range c.Sections {
			sectionLabels[s.MediaType] = s.Label
		}

		if labels.Modules == nil && labels.MediaTypes == nil {
			labels = pagination.DefaultLabels()
		}

		rows := make([][]string, 0, len(c.Executive))
		for _, r := range c.Executive {
			media, ok := sectionLabels[r.MediaType]
			if !ok {
				media = labels.MediaType(r.MediaType)
			}

			rows = append(rows, []string{r.Label, media, strconv.Itoa(r.Page)})
		}

		lines = append(lines, "### "+labels.Module(models.ExecutiveSummaryKey), "")
		lines = append(lines, RenderTable([]string{"Module", "Media", "Page"}, rows)...)
	}

	for _, s := range c.Sections {
		rows := make([][]string, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, []string{r.Label, strconv.Itoa(r.Page)})
		}

		if len(lines) > 0 {
			lines = append(lines, "")
		}

		lines = append(lines, "### "+s.Label, "")
		lines = append(lines, RenderTable([]string{"Module", "Page"}, rows)...)
	}

	return lines
}
