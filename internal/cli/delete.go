package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user by id",
		Long: `Delete the user with the given id. Deleting an id that does not
exist is not an error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	tbl, err := openTable(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer tbl.close()

	deleted := tbl.ctrl.Delete(id)

	if opts.Format == "json" {
		return formatter.Success(DeleteResult{ID: id, Deleted: deleted})
	}
	if !deleted {
		return formatter.Success(fmt.Sprintf("No user with id %s", id))
	}
	return formatter.Success(fmt.Sprintf("Deleted user %s", id))
}
