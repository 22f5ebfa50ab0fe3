package recorder

import "BankReserves/internal/model"

// NoopRecorder is a no-op implementation used when no sink is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunEvent) error              { return nil }
func (n *NoopRecorder) RecordTick(_ *model.TickReport) error     { return nil }
func (n *NoopRecorder) RecordAgents(_ []model.AgentReport) error { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
