package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psantana5/corpuspush/internal/config"
	"github.com/psantana5/corpuspush/internal/hoststat"
	"github.com/psantana5/corpuspush/internal/logging"
	"github.com/psantana5/corpuspush/internal/observe"
	"github.com/psantana5/corpuspush/internal/report"
	"github.com/psantana5/corpuspush/internal/wrapper"
)

// SleepFunc pauses between pushes. It returns early with ctx.Err() on
// cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Runner runs one batch.
type Runner struct {
	cfg      *config.Config
	executor wrapper.Executor
	printer  report.Printer
	metrics  *report.Metrics
	logger   *logging.Logger

	clock    observe.Clock
	sleep    SleepFunc
	host     hoststat.Source
	newRunID func() string
}

// Option customises a Runner
type Option func(*Runner)

// WithMetrics records every result into m
func WithMetrics(m *report.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithClock replaces the wall clock used for batch timestamps
func WithClock(c observe.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithSleep replaces the pause between pushes
func WithSleep(s SleepFunc) Option {
	return func(r *Runner) { r.sleep = s }
}

// WithHostSource replaces the gopsutil host reader
func WithHostSource(s hoststat.Source) Option {
	return func(r *Runner) { r.host = s }
}

// WithRunID fixes the run id generator
func WithRunID(f func() string) Option {
	return func(r *Runner) { r.newRunID = f }
}

// New creates a runner. The executor runs the push client, the printer
// renders progress.
func New(cfg *config.Config, executor wrapper.Executor, printer report.Printer, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		executor: executor,
		printer:  printer,
		logger:   logging.Discard(),
		clock:    observe.SystemClock{},
		sleep:    Sleep,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run pushes every entry of the input directory.
//
// A listing failure returns before anything is printed. On cancellation the
// partial summary is printed and returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	names, err := ListDir(r.cfg.Dir)
	if err != nil {
		return nil, err
	}

	runID := r.newRunID()
	log := r.logger.WithField("run_id", runID)

	summary := report.NewSummary(runID, r.cfg.Dir, r.clock.Now())
	if r.cfg.HostStats {
		summary.Host = hoststat.Take(ctx, r.host)
	}

	log.Info("batch started", logging.Fields{
		"dir":     r.cfg.Dir,
		"files":   len(names),
		"command": r.cfg.Client.Command,
		"delay":   r.cfg.Delay.String(),
	})

	runErr := r.pushAll(ctx, names, summary, log)

	summary.Complete(r.clock.Now())
	if r.metrics != nil {
		r.metrics.RecordSummary(summary)
	}

	if err := r.printer.Finish(summary); err != nil {
		return summary, fmt.Errorf("write summary: %w", err)
	}

	fields := logging.Fields{
		"files":         len(summary.Results),
		"total_seconds": summary.TotalSeconds,
		"wall_seconds":  summary.WallTime().Seconds(),
		"exit_non_zero": summary.ExitNonZero,
		"start_failed":  summary.StartFailed,
	}
	if runErr != nil {
		fields["error"] = runErr.Error()
		log.Warn("batch interrupted", fields)
	} else {
		log.Info("batch finished", fields)
	}

	return summary, runErr
}

func (r *Runner) pushAll(ctx context.Context, names []string, summary *report.Summary, log *logging.Logger) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.printer.Entry(name); err != nil {
			return fmt.Errorf("write entry line: %w", err)
		}

		result, err := r.executor.Run(ctx, wrapper.Invocation{
			File:    name,
			Command: r.cfg.Client.Command,
			Args:    r.cfg.ClientArgs(name),
		})
		if result != nil {
			summary.Add(result)
			if r.metrics != nil {
				r.metrics.RecordResult(result)
			}
			if perr := r.printer.Pushed(result); perr != nil {
				return fmt.Errorf("write timing line: %w", perr)
			}
			if result.Outcome() != report.OutcomeExitZero {
				log.Debug("push client failed", logging.Fields{
					"file":      name,
					"exit_code": result.ExitCode,
					"outcome":   result.Outcome(),
				})
			}
		}
		if err != nil {
			return err
		}

		if err := r.sleep(ctx, r.cfg.Delay); err != nil {
			return err
		}
	}
	return nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
