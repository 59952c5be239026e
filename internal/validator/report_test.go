package validator

import (
	"strings"
	"testing"

	"mediareport/internal/config"
	"mediareport/internal/models"
	"mediareport/internal/report"
)

// Helper to create a validator with the default configuration.
func createTestValidator(t *testing.T) *ReportValidator {
	t.Helper()

	v, err := NewReportValidator(config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewReportValidator failed: %v", err)
	}

	return v
}

func containsWarning(result *ValidationResult, substr string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}

	return false
}

func TestValidate_CleanReport(t *testing.T) {
	src := &report.Source{
		Report: models.Report{
			"startDate":    "2024-01-01",
			"endDate":      "2024-01-31",
			"mediaSummary": map[string]any{"volume": float64(10)},
		},
		Modules: models.ModulesData{
			{MediaType: "articles", Modules: []string{"executiveSummary", "sentiment"}},
		},
	}

	result := createTestValidator(t).Validate(src)

	if !result.IsValid || len(result.Warnings) != 0 {
		t.Errorf("Validate() = %+v, want valid without warnings", result)
	}

	if result.Stats.ModulePages != 2 || result.Stats.ExecutivePages != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name        string
		src         *report.Source
		wantValid   bool
		wantWarning string
	}{
		{
			name: "reversed period",
			src: &report.Source{
				Report:  models.Report{"startDate": "2024-02-01", "endDate": "2024-01-01"},
				Modules: models.ModulesData{{MediaType: "posts", Modules: []string{"sentiment"}}},
			},
			wantValid:   false,
			wantWarning: "no volume",
		},
		{
			name: "no period",
			src: &report.Source{
				Report:  models.Report{"totals": map[string]any{"reach": float64(5)}},
				Modules: models.ModulesData{{MediaType: "posts", Modules: []string{"sentiment"}}},
			},
			wantValid:   true,
			wantWarning: "no reporting period",
		},
		{
			name:        "no modules",
			src:         &report.Source{Report: models.Report{"startDate": "2024-01-01"}},
			wantValid:   true,
			wantWarning: "no modules",
		},
		{
			name: "unconfigured media type only",
			src: &report.Source{
				Report:  models.Report{"startDate": "2024-01-01"},
				Modules: models.ModulesData{{MediaType: "podcasts", Modules: []string{"sentiment"}}},
			},
			wantValid:   false,
			wantWarning: `media type "podcasts"`,
		},
		{
			name: "unlabelled module",
			src: &report.Source{
				Report:  models.Report{"startDate": "2024-01-01"},
				Modules: models.ModulesData{{MediaType: "posts", Modules: []string{"customWidget", "customWidget"}}},
			},
			wantValid:   true,
			wantWarning: `module "customWidget"`,
		},
	}

	v := createTestValidator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.src)

			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (errors: %v)", result.IsValid, tt.wantValid, result.Errors)
			}

			if !containsWarning(result, tt.wantWarning) {
				t.Errorf("warnings %v missing %q", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestValidate_UnlabelledModulesCountedOnce(t *testing.T) {
	src := &report.Source{
		Report: models.Report{},
		Modules: models.ModulesData{
			{MediaType: "posts", Modules: []string{"customWidget"}},
			{MediaType: "articles", Modules: []string{"customWidget"}},
		},
	}

	result := createTestValidator(t).Validate(src)
	if result.Stats.UnlabelledModules != 1 {
		t.Errorf("UnlabelledModules = %d, want 1", result.Stats.UnlabelledModules)
	}
}

func TestNewReportValidator_LabelsFileError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Report.LabelsFile = "/nonexistent/labels.yaml"

	if _, err := NewReportValidator(cfg); err == nil {
		t.Error("NewReportValidator() expected error for missing labels file")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "dateRange", Message: "end date is before start date"}
	if got := err.Error(); got != "dateRange: end date is before start date" {
		t.Errorf("Error() = %q", got)
	}
}
