package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/usertable/internal/config"
	"github.com/roach88/usertable/internal/intent"
	"github.com/roach88/usertable/internal/persist"
	"github.com/roach88/usertable/internal/state"
	"github.com/roach88/usertable/internal/view"
)

// table is one CLI invocation's view of the stored users: the collection is
// restored at start and saved after every mutation.
type table struct {
	ctrl   *intent.Controller
	logger *slog.Logger
	close  func() error
}

// loadConfig reads --config and applies --db on top.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// newLogger logs to the command's stderr. --verbose forces debug level.
func newLogger(opts *RootOptions, cfg config.Config, cmd *cobra.Command) *slog.Logger {
	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openTable loads config, opens storage and restores the collection.
// Errors are ExitErrors already reported through formatter.
func openTable(ctx context.Context, opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*table, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	sortMode, err := cfg.SortMode()
	if err != nil {
		formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "invalid default sort", err)
	}

	logger := newLogger(opts, cfg, cmd)

	var (
		adapter persist.Adapter = persist.Nop{}
		closeFn                 = func() error { return nil }
	)
	if !opts.NoStorage {
		db, err := persist.OpenSQLite(cfg.Database)
		if err != nil {
			formatter.Error(ErrCodeStorage, err.Error(), map[string]string{"database": cfg.Database})
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		adapter = persist.NewAdapter(db,
			persist.WithKey(cfg.StorageKey),
			persist.WithLogger(logger),
		)
		closeFn = db.Close
		formatter.VerboseLog("Using database %s", cfg.Database)
	}

	st := persist.Restore(ctx, adapter, state.WithLogger(logger))
	params := view.DefaultParams()
	params.Sort = sortMode

	return &table{
		ctrl: intent.NewController(st,
			intent.WithLogger(logger),
			intent.WithParams(params),
		),
		logger: logger,
		close:  closeFn,
	}, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
