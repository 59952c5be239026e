package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mediareport/internal/formatter"
	"mediareport/pkg/metadata"
)

func newFormatCommand(opts *options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format PATH",
		Short: "Realign markdown tables in exported reports",
		Long: `Realign markdown tables in a file, or in every .md file under a directory.

Signed documents are signed again after formatting. Without --write this is a
dry run that lists the files that would change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var changed []string

			walkErr := filepath.WalkDir(args[0], func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if d.IsDir() {
					if strings.HasPrefix(d.Name(), ".") && path != args[0] {
						return filepath.SkipDir
					}

					return nil
				}

				if !strings.EqualFold(filepath.Ext(path), ".md") {
					return nil
				}

				wasChanged, procErr := formatFile(path, write)
				if procErr != nil {
					return procErr
				}

				if wasChanged {
					changed = append(changed, path)
				}

				return nil
			})
			if walkErr != nil {
				return walkErr
			}

			verb := "would format"
			if write {
				verb = "formatted"
			}

			for _, path := range changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, path)
			}

			e.log.Debug("format complete", "changed", len(changed), "write", write)

			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write changes to files")

	return cmd
}

// formatFile reports whether formatting changes the file's content.
func formatFile(path string, write bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	original := string(data)

	formatted, err := formatter.FormatMarkdown(original)
	if err != nil {
		return false, fmt.Errorf("failed to format %s: %w", path, err)
	}

	// Re-signing always refreshes the timestamp, so compare the signed bodies.
	_, before := metadata.Extract(original)
	_, after := metadata.Extract(formatted)

	if before == after {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted+"\n"), 0644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return true, nil
}
