package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediareport/internal/report"
)

// ErrPageOutOfRange is returned for a page number past the last page.
var ErrPageOutOfRange = errors.New("page out of range")

// pageOutput describes one page of the reader.
type pageOutput struct {
	Page       int             `json:"page" yaml:"page"`
	TotalPages int             `json:"totalPages" yaml:"total_pages"`
	Kind       report.PageKind `json:"kind" yaml:"kind"`
	MediaType  string          `json:"mediaType,omitempty" yaml:"media_type,omitempty"`
	Module     string          `json:"module,omitempty" yaml:"module,omitempty"`
}

func newPageCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "page N",
		Short: "Show what the reader displays on page N",
		Long: `Show what the reader displays on page N.

Page 1 is the cover, page 2 the contents, and module pages start at 3
with every executive summary ahead of the other modules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page number %q: %w", args[0], err)
			}

			e, v, err := opts.loadView(cmd)
			if err != nil {
				return err
			}

			kind, entry := v.PageAt(n)
			if kind == report.PageNone {
				return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, v.TotalPages)
			}

			out := pageOutput{
				Page:       n,
				TotalPages: v.TotalPages,
				Kind:       kind,
				MediaType:  entry.MediaType,
				Module:     entry.Module,
			}

			return writeOutput(cmd.OutOrStdout(), e.cfg.Output.Format, out, func() []string {
				return []string{pageLine(v, out)}
			})
		},
	}
}

func pageLine(v *report.View, p pageOutput) string {
	prefix := fmt.Sprintf("Page %d of %d: ", p.Page, p.TotalPages)

	switch p.Kind {
	case report.PageCover:
		return prefix + "Cover (" + v.Cover.Title + ")"
	case report.PageContents:
		return prefix + "Contents"
	}

	for _, row := range v.Contents.Rows() {
		if row.Page == p.Page {
			return prefix + row.Label + " [" + row.MediaType + "]"
		}
	}

	return prefix + p.Module + " [" + p.MediaType + "]"
}
