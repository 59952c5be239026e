package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mediareport/internal/backend"
	"mediareport/internal/config"
	"mediareport/internal/formatter"
	"mediareport/internal/report"
	"mediareport/pkg/metadata"
)

// ErrBatchFailed is returned when at least one report in a batch could not be exported.
var ErrBatchFailed = errors.New("some reports failed to export")

func newBatchCommand(opts *options) *cobra.Command {
	var (
		ids    []string
		outDir string
		sign   bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Export several backend reports to a directory",
		Long: `Fetch several reports from the backend and write one markdown file per report.

Examples:
  reportview batch --ids 65f0c1,65f0c2 --out-dir exports --base-url https://api.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(ids) == 0 {
				return fmt.Errorf("%w: --ids", backend.ErrReportIDRequired)
			}

			e, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if e.cfg.Backend.BaseURL == "" {
				return fmt.Errorf("%w: --base-url or backend.base_url is required", config.ErrInvalidBaseURL)
			}

			labels, err := e.cfg.Labels()
			if err != nil {
				return fmt.Errorf("failed to load labels: %w", err)
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}

			loader := backend.NewLoader(e.cfg.Backend, e.log)
			if e.cfg.Backend.Email != "" && opts.password != "" {
				if err := loader.Authenticate(cmd.Context(), e.cfg.Backend.Email, opts.password); err != nil {
					e.log.Warn("authentication failed, continuing with API key", "error", err)
				}
			}

			failed := 0

			for _, res := range loader.LoadMany(cmd.Context(), ids) {
				if res.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", res.ID, res.Err)

					continue
				}

				v := report.Build(res.Source.Report, res.Source.Modules, report.Options{
					MediaTypes: e.cfg.Report.MediaTypes,
					Labels:     labels,
					Logger:     e.log,
				})

				content := formatter.RenderView(v)
				if sign || e.cfg.Output.Sign {
					content = metadata.Sign(content, res.ID) + "\n"
				}

				path := filepath.Join(outDir, res.ID+".md")
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", res.ID, err)

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s -> %s\n", res.ID, path)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(ids))
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Comma-separated report ids")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the exported files")
	cmd.Flags().BoolVar(&sign, "sign", false, "Append a signed metadata block")

	return cmd
}
