package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/usertable/internal/intent"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name  string
	Age   string
	Email string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one user",
		Long: `Add one user to the table. All three fields are required and age
must be a whole number. The new user gets a fresh random id.

Example:
  usertable add --name "Ali Reza" --age 30 --email ali@example.com`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "user name")
	cmd.Flags().StringVar(&opts.Age, "age", "", "user age (whole number)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "user email")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	tbl, err := openTable(ctx, opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer tbl.close()

	r, err := tbl.ctrl.AddOne(intent.Form{Name: opts.Name, Age: opts.Age, Email: opts.Email})
	if err != nil {
		if intent.IsValidationError(err) {
			formatter.Error(ErrCodeValidation, err.Error(), nil)
			return WrapExitError(ExitFailure, "user not added", err)
		}
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "user not added", err)
	}

	if opts.Format == "json" {
		return formatter.Success(UserOutput{ID: r.ID, Name: r.Name, Age: r.Age, Email: r.Email})
	}
	return formatter.Success(fmt.Sprintf("Added user %s", r.ID))
}
