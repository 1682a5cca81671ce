package main

import (
	"context"
	"errors"
	"time"

	"greenbutton/internal/repository/sqlite"
	"greenbutton/internal/service"
	"greenbutton/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type watchOptions struct {
	dbPath   string
	policy   string
	debounce time.Duration
}

func newWatchCmd(a *app) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Store each Atom document in SQLite whenever it changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), a, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Missing service kind policy: assume-gas, reject, missing (default from config)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Quiet period before a changed file is parsed")

	return cmd
}

func runWatch(ctx context.Context, a *app, paths []string, opts watchOptions) error {
	repo, err := sqlite.New(a.dbPath(opts.dbPath))
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := a.newService(opts.policy, service.WithRepository(repo))
	if err != nil {
		return err
	}

	onChange := func(path string) {
		res, err := svc.ParseFile(ctx, path)
		if err != nil {
			a.logger.Error("parse failed", zap.String("path", path), zap.Error(err))
			return
		}
		if _, err := svc.ExportSQLite(ctx, res); err != nil {
			a.logger.Error("export failed", zap.String("path", path), zap.Error(err))
		}
	}

	for _, path := range paths {
		onChange(path)
	}

	w := watcher.New(paths, onChange, watcher.WithDebounce(opts.debounce), watcher.WithLogger(a.logger))
	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
