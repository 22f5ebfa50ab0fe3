package recorder

import (
	"errors"
	"time"

	"BankReserves/internal/model"
)

// RunEvent describes one simulation run at construction time.
type RunEvent struct {
	RunID          string
	StartedAt      time.Time
	Population     int
	RichThreshold  float64
	ReservePercent float64
	InterestRate   float64
	Seed           uint64
}

// Recorder receives the per-tick output of a model.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecordTick(rep *model.TickReport) error
	RecordAgents(reps []model.AgentReport) error
	Close() error
}

// Multi fans every call out to all recorders and joins their errors.
type Multi []Recorder

func (m Multi) RecordRun(evt *RunEvent) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordRun(evt))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordTick(rep *model.TickReport) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordTick(rep))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordAgents(reps []model.AgentReport) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordAgents(reps))
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// TicksOnly forwards everything except per-agent rows.
type TicksOnly struct {
	Recorder
}

func (TicksOnly) RecordAgents(_ []model.AgentReport) error { return nil }
