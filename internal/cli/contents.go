package cli

import (
	"github.com/spf13/cobra"

	"mediareport/internal/formatter"
)

func newContentsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "contents",
		Short: "Print the contents page with page numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, v, err := opts.loadView(cmd)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), e.cfg.Output.Format, v.Contents, func() []string {
				return formatter.ContentsLines(v.Contents, v.Labels)
			})
		},
	}
}
