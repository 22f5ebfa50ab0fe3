package recorder

import (
	"sync"

	"BankReserves/internal/model"
)

// MemoryRecorder keeps everything in memory. Used by tests and by the CLI's
// summary output.
type MemoryRecorder struct {
	mu     sync.Mutex
	Runs   []RunEvent
	Ticks  []model.TickReport
	Agents []model.AgentReport
}

func NewMemoryRecorder() *MemoryRecorder { return &MemoryRecorder{} }

func (m *MemoryRecorder) RecordRun(evt *RunEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs = append(m.Runs, *evt)
	return nil
}

func (m *MemoryRecorder) RecordTick(rep *model.TickReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ticks = append(m.Ticks, *rep)
	return nil
}

func (m *MemoryRecorder) RecordAgents(reps []model.AgentReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Agents = append(m.Agents, reps...)
	return nil
}

func (m *MemoryRecorder) Close() error { return nil }
