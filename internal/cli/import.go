package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/usertable/internal/intent"
)

// ImportResult is the JSON payload of a successful import.
type ImportResult struct {
	Imported int          `json:"imported"`
	Users    []UserOutput `json:"users"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import users from a JSON file",
		Long: `Import users from a JSON file holding an array of objects:

  [{"name": "Ali", "age": 30, "email": "ali@example.com"}, ...]

Users are appended in file order, each with a fresh id. A file that is not a
JSON array is rejected and nothing is imported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	tbl, err := openTable(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer tbl.close()

	users, err := tbl.ctrl.ImportFile(ctx, path)
	if err != nil {
		if intent.IsParseError(err) {
			formatter.Error(ErrCodeParse, err.Error(), map[string]string{"file": path})
			return WrapExitError(ExitFailure, "import rejected", err)
		}
		formatter.Error(ErrCodeNotFound, err.Error(), map[string]string{"file": path})
		return WrapExitError(ExitCommandError, "failed to read import file", err)
	}

	formatter.VerboseLog("Imported %d user(s) from %s", len(users), path)

	if opts.Format == "json" {
		out := ImportResult{Imported: len(users), Users: make([]UserOutput, len(users))}
		for i, r := range users {
			out.Users[i] = UserOutput{ID: r.ID, Name: r.Name, Age: r.Age, Email: r.Email}
		}
		return formatter.Success(out)
	}
	return formatter.Success(fmt.Sprintf("Imported %d users", len(users)))
}
