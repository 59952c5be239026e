package cli

import (
	"github.com/spf13/cobra"

	"mediareport/internal/formatter"
)

func newSummaryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the report's headline values",
		Long: `Print volume, reach, AVE, region, language and time period.

Examples:
  reportview summary --file report.json
  reportview summary --file report.json -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, v, err := opts.loadView(cmd)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), e.cfg.Output.Format, v.Summary, func() []string {
				return formatter.SummaryLines(v.Summary)
			})
		},
	}
}
