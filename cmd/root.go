package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/angeloszaimis/ping-url/config"
	"github.com/angeloszaimis/ping-url/internal/actions"
	"github.com/angeloszaimis/ping-url/internal/metrics"
	"github.com/angeloszaimis/ping-url/internal/prober"
	"github.com/angeloszaimis/ping-url/pkg/logger"
)

var version = "dev"

func newRootCommand(stdout io.Writer, getenv func(string) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping-url",
		Short: "Wait until a URL answers 200 OK",
		Long: `Wait until a URL answers 200 OK.

  The URL is requested until it returns HTTP 200 or the trial budget is spent.
  Every failed trial (connection error, malformed URL or any other status) is
  followed by a fixed delay. Inputs come from INPUT_URL, INPUT_DELAY and
  INPUT_MAX_TRIALS, as set by GitHub Actions, or from the flags below.

  Exit status is 0 when the URL was reachable, 1 when it was not, and 2 on a
  configuration error or an error that cannot be retried.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), stdout, getenv)
		},
	}

	cmd.SetOut(stdout)
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet, stdout io.Writer, getenv func(string) string) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(stdout, cfg.LogLevel, false, cfg.Environment)
	if cfg.File != "" {
		log.Info("Loaded config file", slog.String("file", cfg.File))
	}

	probeCfg := cfg.Probe()
	log.Info("Probing URL",
		slog.String("url", probeCfg.URL),
		slog.Duration("delay", probeCfg.Delay),
		slog.Int("max_trials", probeCfg.MaxTrials),
		slog.Duration("timeout", probeCfg.Timeout))

	m := metrics.NewMetrics()
	reachable, probeErr := prober.New(probeCfg, log, prober.WithMetrics(m)).Probe(ctx)

	snap := m.Snapshot()
	log.Info("Probe summary", slog.Any("summary", snap))

	action := githubactions.New(
		githubactions.WithWriter(stdout),
		githubactions.WithGetenv(getenv),
	)
	actions.NewReporter(action, log).Report(probeCfg.URL, snap)

	if probeErr != nil {
		return probeErr
	}

	if !reachable {
		return errNotReachable
	}

	return nil
}
