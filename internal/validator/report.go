// Package validator checks report records for problems that would show up in the reader.
package validator

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"mediareport/internal/config"
	"mediareport/internal/models"
	"mediareport/internal/pagination"
	"mediareport/internal/report"
	"mediareport/internal/summary"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string `json:"field" yaml:"field"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError `json:"errors" yaml:"errors"`
	Warnings []string          `json:"warnings" yaml:"warnings"`
	Stats    ValidationStats   `json:"stats" yaml:"stats"`
	IsValid  bool              `json:"valid" yaml:"valid"`
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	MediaTypes        int `json:"mediaTypes" yaml:"media_types"`
	ModulePages       int `json:"modulePages" yaml:"module_pages"`
	ExecutivePages    int `json:"executivePages" yaml:"executive_pages"`
	SkippedMediaTypes int `json:"skippedMediaTypes" yaml:"skipped_media_types"`
	UnlabelledModules int `json:"unlabelledModules" yaml:"unlabelled_modules"`
}

// ReportValidator validates decoded reports against the configured layout.
type ReportValidator struct {
	mediaTypes []string
	labels     pagination.Labels
}

// NewReportValidator creates a new validator.
func NewReportValidator(cfg *config.Config) (*ReportValidator, error) {
	labels, err := cfg.Labels()
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	return &ReportValidator{
		mediaTypes: cfg.Report.MediaTypes,
		labels:     labels,
	}, nil
}

// Validate checks src. Problems that break the reader are errors; anything
// that only degrades the display is a warning.
func (v *ReportValidator) Validate(src *report.Source) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	v.checkPeriod(src.Report, result)
	v.checkTotals(src.Report, result)
	v.checkModules(src.Modules, result)

	result.IsValid = len(result.Errors) == 0

	return result
}

func (v *ReportValidator) checkPeriod(r models.Report, result *ValidationResult) {
	dr := summary.ResolveDateRange(r)

	switch {
	case dr.IsEmpty():
		result.Warnings = append(result.Warnings, "no reporting period found; the cover shows \"-\"")
	case dr.Start != nil && dr.End != nil && dr.End.Before(*dr.Start):
		result.Errors = append(result.Errors, ValidationError{
			Field:   "dateRange",
			Value:   dr.Start.Format("2006-01-02") + " / " + dr.End.Format("2006-01-02"),
			Message: "end date is before start date",
		})
	}
}

func (v *ReportValidator) checkTotals(r models.Report, result *ValidationResult) {
	if summary.Build(r).Totals.IsZero() {
		result.Warnings = append(result.Warnings, "no volume, reach or AVE found; summary values are 0")
	}
}

func (v *ReportValidator) checkModules(modules models.ModulesData, result *ValidationResult) {
	if len(modules) == 0 {
		result.Warnings = append(result.Warnings, "report has no modules; only the cover and contents pages exist")
		return
	}

	idx := pagination.BuildPageIndex(v.mediaTypes, modules)

	result.Stats.MediaTypes = len(modules)
	result.Stats.ModulePages = idx.Len()
	result.Stats.ExecutivePages = len(idx.ExecutivePages())

	for _, mt := range modules.MediaTypes() {
		if !slices.Contains(v.mediaTypes, mt) {
			result.Stats.SkippedMediaTypes++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("media type %q has modules but is not configured; its pages are skipped", mt))
		}
	}

	unlabelled := lo.Uniq(lo.FilterMap(idx.Ordered, func(e models.PageEntry, _ int) (string, bool) {
		_, ok := v.labels.Modules[e.Module]
		return e.Module, !ok
	}))

	result.Stats.UnlabelledModules = len(unlabelled)

	for _, key := range unlabelled {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("module %q has no label; the contents page shows the raw key", key))
	}

	if idx.Len() == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "modules",
			Message: "no module belongs to a configured media type",
		})
	}
}
