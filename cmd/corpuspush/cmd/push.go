package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psantana5/corpuspush/internal/batch"
	"github.com/psantana5/corpuspush/internal/config"
	"github.com/psantana5/corpuspush/internal/logging"
	"github.com/psantana5/corpuspush/internal/report"
	"github.com/psantana5/corpuspush/internal/wrapper"
)

func newPushCommand(opts *rootOptions) *cobra.Command {
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push every entry of the input directory",
		Long: `Push lists the input directory once and runs the push client for each
entry in listing order. Each run is awaited before the next starts, then the
runner pauses for --delay. A failing client does not stop the batch; only an
unreadable directory does.

Example:
  corpuspush push
  corpuspush push --dir ./files/raw.en --client ./bin/client --client-arg= --put-flag -put
  corpuspush push -o json --metrics-file /var/lib/node_exporter/corpuspush.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return runPush(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	d := config.Default()
	flags := pushCmd.Flags()
	flags.String("dir", d.Dir, "input directory")
	flags.String("client", d.Client.Command, "push client executable")
	flags.StringSlice("client-arg", d.Client.Args, "arguments passed to the client before the put flag")
	flags.String("put-flag", d.Client.PutFlag, "flag that puts the client in push mode")
	flags.String("client-output", d.Client.Output, "where the client's own output goes: stderr, stdout or discard")
	flags.Duration("delay", d.Delay, "pause after every push")
	flags.Duration("timeout", d.Timeout, "kill a push that runs longer (0 waits forever)")
	flags.StringP("output", "o", d.Output, "output format: "+strings.Join(report.Formats, ", "))
	flags.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this textfile after the run")
	flags.Bool("host-stats", d.HostStats, "record a host snapshot in the summary")

	for key, name := range map[string]string{
		"dir":             "dir",
		"client.command":  "client",
		"client.args":     "client-arg",
		"client.put_flag": "put-flag",
		"client.output":   "client-output",
		"delay":           "delay",
		"timeout":         "timeout",
		"output":          "output",
		"metrics_file":    "metrics-file",
		"host_stats":      "host-stats",
	} {
		opts.v.BindPFlag(key, flags.Lookup(name))
	}

	return pushCmd
}

func runPush(parent context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	printer, err := report.NewPrinter(cfg.Output, stdout)
	if err != nil {
		return err
	}

	process := wrapper.NewProcess(logger)
	process.Timeout = cfg.Timeout
	switch cfg.Client.Output {
	case config.ClientOutputStdout:
		process.Stdout, process.Stderr = stdout, stderr
	case config.ClientOutputDiscard:
		process.Stdout, process.Stderr = nil, nil
	default:
		process.Stdout, process.Stderr = stderr, stderr
	}

	metrics := report.NewMetrics()
	runner := batch.New(cfg, process, printer,
		batch.WithMetrics(metrics),
		batch.WithLogger(logger),
	)

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("received signal, stopping after cleanup", logging.Fields{"signal": sig.String()})
			cancel()
		case <-ctx.Done():
		}
	}()

	_, runErr := runner.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", logging.Fields{"error": err.Error()})
		}
	}

	return runErr
}

func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logging.New(level, cfg.Log.Format == "json")
	logger.SetOutput(w)
	return logger, nil
}
