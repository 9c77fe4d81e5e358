package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/usertable/internal/view"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search string
	Sort   string
	Page   int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of users",
		Long: `Show one page of users, five per page.

--search keeps users whose name contains the term, ignoring case.
--sort orders by ageAsc, ageDesc, nameLenAsc or nameLenDesc; ties keep
insertion order. --page is clamped to the available pages.

Examples:
  usertable list
  usertable list --search ali --sort nameLenDesc
  usertable list --page 3 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by name (case-insensitive substring)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort mode (default from config, else ageAsc)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	var mode view.SortMode
	if opts.Sort != "" {
		m, err := view.ParseSortMode(opts.Sort)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid --sort", err)
		}
		mode = m
	}

	tbl, err := openTable(ctx, opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer tbl.close()

	tbl.ctrl.SetSearch(opts.Search)
	if mode != "" {
		if err := tbl.ctrl.SetSort(mode); err != nil {
			return WrapExitError(ExitCommandError, "invalid --sort", err)
		}
	}
	tbl.ctrl.GoToPage(opts.Page)

	params := tbl.ctrl.Params()
	page := tbl.ctrl.View()

	if opts.Format == "json" {
		return formatter.Success(newViewResponse(params, page))
	}
	writeTable(cmd.OutOrStdout(), params, page)
	return nil
}
