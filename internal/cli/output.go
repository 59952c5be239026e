package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"mediareport/internal/config"
)

// writeOutput prints v as JSON or YAML, or the markdown lines for the markdown format.
func writeOutput(w io.Writer, format string, v any, markdown func() []string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, strings.Join(markdown(), "\n"))
		return err
	}
}
