package report

import (
	"strconv"

	"mediareport/internal/logger"
	"mediareport/internal/models"
	"mediareport/internal/pagination"
	"mediareport/internal/summary"
)

// Cover holds the values printed on page 1.
type Cover struct {
	Title        string `json:"title" yaml:"title"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	TimePeriod   string `json:"timePeriod" yaml:"time_period"`
}

// View is everything the report reading screen renders for one report.
type View struct {
	ReportID   string                `json:"reportId,omitempty" yaml:"report_id,omitempty"`
	Cover      Cover                 `json:"cover" yaml:"cover"`
	Summary    summary.Summary       `json:"summary" yaml:"summary"`
	Contents   pagination.Contents   `json:"contents" yaml:"contents"`
	Index      *pagination.PageIndex `json:"-" yaml:"-"`
	Labels     pagination.Labels     `json:"-" yaml:"-"`
	Pages      []models.PageEntry    `json:"pages" yaml:"pages"`
	TotalPages int                   `json:"totalPages" yaml:"total_pages"`
}

// Options control view assembly.
type Options struct {
	// MediaTypes orders the media sections; empty means the modules' own order.
	MediaTypes []string
	Labels     pagination.Labels
	Logger     *logger.Logger
}

// Build assembles the view from a decoded report and its modules.
func Build(r models.Report, modules models.ModulesData, opts Options) *View {
	mediaTypes := opts.MediaTypes
	if len(mediaTypes) == 0 {
		mediaTypes = modules.MediaTypes()
	}

	labels := opts.Labels
	if labels.Modules == nil && labels.MediaTypes == nil {
		labels = pagination.DefaultLabels()
	}

	sum := summary.Build(r)
	idx := pagination.BuildPageIndex(mediaTypes, modules)

	if opts.Logger != nil {
		opts.Logger.Debug("built page index",
			"report", ID(r),
			"media_types", len(mediaTypes),
			"module_pages", idx.Len(),
			"executive_pages", len(idx.ExecutivePages()),
		)
	}

	return &View{
		ReportID: ID(r),
		Cover: Cover{
			Title:        Title(r),
			Organization: Organization(r),
			TimePeriod:   sum.TimePeriod,
		},
		Summary:    sum,
		Contents:   pagination.BuildContents(idx, labels),
		Index:      idx,
		Labels:     labels,
		Pages:      idx.Ordered,
		TotalPages: idx.TotalPages(),
	}
}

// PageKind names what occupies a page.
type PageKind string

// Page kinds.
const (
	PageCover    PageKind = "cover"
	PageContents PageKind = "contents"
	PageModule   PageKind = "module"
	PageNone     PageKind = "none"
)

// PageAt reports what the pager shows on page n.
func (v *View) PageAt(n int) (PageKind, models.PageEntry) {
	switch n {
	case pagination.CoverPage:
		return PageCover, models.PageEntry{Page: n}
	case pagination.ContentsPage:
		return PageContents, models.PageEntry{Page: n}
	}

	if e, ok := v.Index.Entry(n); ok {
		return PageModule, e
	}

	return PageNone, models.PageEntry{}
}

// ID returns the report's identifier as a string.
func ID(r models.Report) string {
	for _, key := range []string{"id", "_id", "reportId"} {
		v, ok := r.Lookup(key)
		if !ok || !models.Truthy(v) {
			continue
		}

		switch id := v.(type) {
		case string:
			return id
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64)
		}
	}

	return ""
}

// Title returns the report title, defaulting to "Media Report".
func Title(r models.Report) string {
	for _, path := range [][]string{{"title"}, {"name"}, {"formData", "title"}} {
		if s := r.String(path...); s != "" {
			return s
		}
	}

	return "Media Report"
}

// Organization returns the organization name the report belongs to.
func Organization(r models.Report) string {
	for _, path := range [][]string{{"organization", "name"}, {"organizationName"}, {"organization"}} {
		if s := r.String(path...); s != "" {
			return s
		}
	}

	return ""
}
