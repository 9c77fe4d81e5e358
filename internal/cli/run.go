package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/usertable/internal/harness"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Golden string // snapshot file to compare against
	Update bool   // rewrite the snapshot instead of comparing
}

// SessionResult is the JSON payload of the run command.
type SessionResult struct {
	Name   string       `json:"name"`
	Pass   bool         `json:"pass"`
	Errors []string     `json:"errors,omitempty"`
	Steps  int          `json:"steps"`
	View   ViewResponse `json:"view"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <session.yaml>",
		Short: "Run a scripted session",
		Long: `Run a scripted session of user intents against a fresh in-memory
table and print the final view. The stored database is never touched.

Each step may carry an expect block; any failed expectation fails the run.
With --golden the session snapshot is also compared with a golden file,
and --update rewrites that file instead.

Exit codes:
  0 - All expectations held
  1 - An expectation or the golden comparison failed
  2 - Command error (unreadable or invalid session file)

Examples:
  usertable run ./sessions/import.yaml
  usertable run ./sessions/import.yaml --golden ./golden/import.golden
  usertable run ./sessions/import.yaml --golden ./golden/import.golden --update`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Golden, "golden", "", "golden snapshot file to compare against")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite the golden snapshot")

	return cmd
}

func runSession(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Update && opts.Golden == "" {
		formatter.Error(ErrCodeGeneric, "--update requires --golden", nil)
		return NewExitError(ExitCommandError, "--update requires --golden")
	}

	session, err := harness.LoadSession(path)
	if err != nil {
		formatter.Error(ErrCodeSession, err.Error(), map[string]string{"file": path})
		return WrapExitError(ExitCommandError, "failed to load session", err)
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	result, err := harness.RunWithLogger(session, logger)
	if err != nil {
		formatter.Error(ErrCodeSession, err.Error(), map[string]string{"session": session.Name})
		return WrapExitError(ExitCommandError, "session aborted", err)
	}

	if opts.Golden != "" {
		if err := checkGolden(opts, session.Name, result); err != nil {
			result.AddError(err.Error())
		}
	}

	out := SessionResult{
		Name:   session.Name,
		Pass:   result.Pass,
		Errors: result.Errors,
		Steps:  len(result.Trace),
		View:   newViewResponse(result.Params, result.Final),
	}

	if opts.Format != "json" {
		writeSessionText(cmd.OutOrStdout(), out, result)
	}

	if !result.Pass {
		msg := fmt.Sprintf("session %q failed", session.Name)
		if opts.Format == "json" {
			formatter.Error(ErrCodeExpect, msg, out)
		}
		return NewExitError(ExitFailure, msg)
	}
	if opts.Format == "json" {
		return formatter.Success(out)
	}
	return nil
}

// checkGolden compares the snapshot with the golden file, or rewrites it
// when --update is set.
func checkGolden(opts *RunOptions, name string, result *harness.Result) error {
	actual, err := harness.NewSnapshot(name, result).Marshal()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if opts.Update {
		if err := os.WriteFile(opts.Golden, actual, 0o644); err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}
		return nil
	}

	expected, err := os.ReadFile(opts.Golden)
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(expected, actual) {
		return fmt.Errorf("snapshot differs from %s (run with --update to accept)", opts.Golden)
	}
	return nil
}

func writeSessionText(w io.Writer, out SessionResult, result *harness.Result) {
	if out.Pass {
		fmt.Fprintf(w, "✓ %s (%d steps)\n", out.Name, out.Steps)
	} else {
		fmt.Fprintf(w, "✗ %s (%d steps)\n", out.Name, out.Steps)
		for _, e := range out.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintln(w)
	writeTable(w, result.Params, result.Final)
}
