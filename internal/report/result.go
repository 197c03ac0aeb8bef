package report

import (
	"strings"
	"time"
)

// Outcome labels, used for summary counts and the pushes_total metric.
const (
	OutcomeExitZero    = "exit_zero"
	OutcomeExitNonZero = "exit_non_zero"
	OutcomeStartFailed = "start_failed"
)

// Result is the immutable record of one push client invocation.
// Set once, never change.
type Result struct {
	File    string   `json:"file" yaml:"file"`
	Command []string `json:"command" yaml:"command"`
	PID     int      `json:"pid" yaml:"pid"`

	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"-" yaml:"-"`
	Seconds   float64       `json:"seconds" yaml:"seconds"`

	// ExitCode is -1 when the process never started or was killed by a signal.
	ExitCode   int    `json:"exit_code" yaml:"exit_code"`
	StartError string `json:"start_error,omitempty" yaml:"start_error,omitempty"`
}

// NewResult creates an immutable result
func NewResult(file string, command []string, pid, exitCode int, startTime, endTime time.Time) *Result {
	d := endTime.Sub(startTime)
	if d < 0 {
		d = 0
	}
	return &Result{
		File:      file,
		Command:   command,
		PID:       pid,
		ExitCode:  exitCode,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  d,
		Seconds:   d.Seconds(),
	}
}

// NewStartFailure records a client that could not be spawned.
func NewStartFailure(file string, command []string, startTime, endTime time.Time, err error) *Result {
	r := NewResult(file, command, 0, -1, startTime, endTime)
	if err != nil {
		r.StartError = err.Error()
	}
	return r
}

// Outcome classifies the result for counting
func (r *Result) Outcome() string {
	switch {
	case r.StartError != "":
		return OutcomeStartFailed
	case r.ExitCode == 0:
		return OutcomeExitZero
	default:
		return OutcomeExitNonZero
	}
}

// CommandLine joins the command for log output
func (r *Result) CommandLine() string {
	return strings.Join(r.Command, " ")
}
