package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mediareport/internal/validator"
)

// ErrInvalidReport is returned when validation finds errors.
var ErrInvalidReport = errors.New("report failed validation")

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a report for problems the reader would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			src, err := opts.loadSource(cmd.Context(), e)
			if err != nil {
				return err
			}

			v, err := validator.NewReportValidator(e.cfg)
			if err != nil {
				return err
			}

			result := v.Validate(src)

			err = writeOutput(cmd.OutOrStdout(), e.cfg.Output.Format, result, func() []string {
				return validationLines(result)
			})
			if err != nil {
				return err
			}

			if !result.IsValid {
				return fmt.Errorf("%w: %d error(s)", ErrInvalidReport, len(result.Errors))
			}

			return nil
		},
	}
}

func validationLines(result *validator.ValidationResult) []string {
	status := "valid"
	if !result.IsValid {
		status = "invalid"
	}

	lines := []string{
		fmt.Sprintf("Report is %s: %d module pages (%d executive), %d warning(s)",
			status, result.Stats.ModulePages, result.Stats.ExecutivePages, len(result.Warnings)),
	}

	for _, e := range result.Errors {
		lines = append(lines, "- ERROR "+e.Error())
	}

	for _, w := range result.Warnings {
		lines = append(lines, "- WARN "+w)
	}

	return lines
}
