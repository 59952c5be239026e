package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediareport/internal/formatter"
	"mediareport/pkg/metadata"
)

func newExportCommand(opts *options) *cobra.Command {
	var (
		out  string
		sign bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report overview as a markdown document",
		Long: `Write the cover, summary and contents of a report as markdown.

With --sign a metadata block carrying a SHA-256 hash is appended so the
document can be checked later with 'reportview verify'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, v, err := opts.loadView(cmd)
			if err != nil {
				return err
			}

			content := formatter.RenderView(v)
			if sign || e.cfg.Output.Sign {
				content = metadata.Sign(content, v.ReportID) + "\n"
			}

			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			if err := os.WriteFile(out, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			e.log.Info("exported report", "report", v.ReportID, "path", out, "pages", v.TotalPages)

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&sign, "sign", false, "Append a signed metadata block")

	return cmd
}
