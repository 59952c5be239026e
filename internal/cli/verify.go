package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediareport/pkg/metadata"
)

func newVerifyCommand() *cobra.Command {
	var reportID string

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check the signature of an exported report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			verify := metadata.Verify
			if reportID != "" {
				verify = func(content string) (*metadata.Metadata, error) {
					return metadata.VerifyReport(content, reportID)
				}
			}

			meta, err := verify(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (report %s, generated %s)\n",
				args[0], meta.ReportID, meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

			return err
		},
	}

	cmd.Flags().StringVar(&reportID, "report-id", "", "Also require the document to belong to this report")

	return cmd
}
