package wrapper

// A failing push client is data, not an error: the batch always moves on.
// Only cancellation of the caller's context is reported as an error.

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/psantana5/corpuspush/internal/logging"
	"github.com/psantana5/corpuspush/internal/observe"
	"github.com/psantana5/corpuspush/internal/report"
)

// Invocation is one push client call for one file.
type Invocation struct {
	File    string
	Command string
	Args    []string
}

// Argv returns the full command line
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Command)
	return append(argv, i.Args...)
}

// Executor runs one invocation to completion.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (*report.Result, error)
}

// Process spawns the push client as a child process.
type Process struct {
	// Stdout and Stderr receive the client's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout kills a client that runs longer. Zero waits forever.
	Timeout time.Duration

	Clock  observe.Clock
	Logger *logging.Logger
}

// NewProcess creates an executor forwarding client output to stderr
func NewProcess(logger *logging.Logger) *Process {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Process{
		Stdout: os.Stderr,
		Stderr: os.Stderr,
		Clock:  observe.SystemClock{},
		Logger: logger,
	}
}

// Run spawns the client and blocks until it exits.
func (p *Process) Run(ctx context.Context, inv Invocation) (*report.Result, error) {
	log := p.logger().WithField("file", inv.File)

	runCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Command, inv.Args...)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	isolate(cmd)

	timing := observe.StartTiming(p.Clock)

	if err := cmd.Start(); err != nil {
		timing.Complete()
		log.Debug("push client did not start", logging.Fields{"error": err.Error()})
		result := report.NewStartFailure(inv.File, inv.Argv(), timing.StartedAt, timing.CompletedAt, err)
		return result, ctx.Err()
	}

	pid := cmd.Process.Pid
	log.Debug("push client started", logging.Fields{"pid": pid, "command": cmd.String()})

	err := cmd.Wait()
	timing.Complete()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	result := report.NewResult(inv.File, inv.Argv(), pid, exitCode, timing.StartedAt, timing.CompletedAt)

	fields := logging.Fields{"pid": pid, "exit_code": exitCode, "seconds": result.Seconds}
	if ctx.Err() == nil && runCtx.Err() != nil {
		fields["timeout"] = p.Timeout.String()
	}
	log.Debug("push client exited", fields)

	return result, ctx.Err()
}

func (p *Process) logger() *logging.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}
