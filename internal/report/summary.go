package report

import (
	"time"

	"github.com/psantana5/corpuspush/internal/hoststat"
)

// Summary is the outcome of one batch run.
type Summary struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Dir         string    `json:"dir" yaml:"dir"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`

	Results []*Result `json:"results" yaml:"results"`

	// Total is the sum of per-file durations. Pauses are not included.
	Total        time.Duration `json:"-" yaml:"-"`
	TotalSeconds float64       `json:"total_seconds" yaml:"total_seconds"`

	ExitZero    int `json:"exit_zero" yaml:"exit_zero"`
	ExitNonZero int `json:"exit_non_zero" yaml:"exit_non_zero"`
	StartFailed int `json:"start_failed" yaml:"start_failed"`

	Host *hoststat.Snapshot `json:"host,omitempty" yaml:"host,omitempty"`
}

// NewSummary starts an empty summary
func NewSummary(runID, dir string, startedAt time.Time) *Summary {
	return &Summary{
		RunID:     runID,
		Dir:       dir,
		StartedAt: startedAt,
		Results:   []*Result{},
	}
}

// Add appends a result and adds its duration to the total.
func (s *Summary) Add(r *Result) {
	s.Results = append(s.Results, r)
	s.Total += r.Duration
	s.TotalSeconds = s.Total.Seconds()

	switch r.Outcome() {
	case OutcomeExitZero:
		s.ExitZero++
	case OutcomeExitNonZero:
		s.ExitNonZero++
	case OutcomeStartFailed:
		s.StartFailed++
	}
}

// Complete stamps the end of the batch
func (s *Summary) Complete(at time.Time) {
	s.CompletedAt = at
}

// WallTime is the elapsed time of the whole batch, pauses included.
func (s *Summary) WallTime() time.Duration {
	if s.CompletedAt.IsZero() {
		return 0
	}
	return s.CompletedAt.Sub(s.StartedAt)
}
