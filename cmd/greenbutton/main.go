package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"greenbutton/internal/config"
	"greenbutton/internal/feed"
	"greenbutton/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// app is the state shared by every subcommand after PersistentPreRunE
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:           "greenbutton",
		Short:         "Turn Green Button Atom feeds into metering objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG, /etc)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override: debug, info, warn, error")

	cmd.AddCommand(newParseCmd(a), newExportCmd(a), newRunsCmd(a), newWatchCmd(a))
	return cmd
}

func (a *app) setup(opts globalOptions) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, _, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("config loaded", zap.String("summary", cfg.Summary()))
	return nil
}

// newService builds a FeedService with the policy named by override, or the
// configured one when override is empty
func (a *app) newService(override string, opts ...service.Option) (*service.FeedService, error) {
	name := a.cfg.Service.Policy
	if override != "" {
		name = override
	}
	policy, err := feed.PolicyByName(name)
	if err != nil {
		return nil, err
	}

	opts = append(opts, service.WithPolicy(policy), service.WithLogger(a.logger))
	return service.NewFeedService(opts...), nil
}
