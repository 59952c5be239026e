package report

import (
	"fmt"
	"os"

	"mediareport/internal/models"
)

// Source is a decoded report together with its module listing.
type Source struct {
	Report  models.Report
	Modules models.ModulesData
}

// Decode builds a Source from raw report bytes and optional raw module bytes.
// Without module bytes the modules embedded in the report are used.
func Decode(reportData, modulesData []byte) (*Source, error) {
	r, err := DecodeReport(reportData)
	if err != nil {
		return nil, err
	}

	var modules models.ModulesData
	if len(modulesData) > 0 {
		modules, err = DecodeModules(modulesData)
	} else {
		modules, err = DecodeEmbeddedModules(reportData)
	}

	if err != nil {
		return nil, err
	}

	return &Source{Report: r, Modules: modules}, nil
}

// LoadFiles reads a report record and, when modulesPath is set, a separate module file.
func LoadFiles(reportPath, modulesPath string) (*Source, error) {
	reportData, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var modulesData []byte
	if modulesPath != "" {
		modulesData, err = os.ReadFile(modulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read modules file: %w", err)
		}
	}

	return Decode(reportData, modulesData)
}
