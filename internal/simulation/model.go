// Package simulation owns the population and the bank and drives one
// discrete tick at a time.
package simulation

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"BankReserves/internal/activation"
	"BankReserves/internal/bank"
	"BankReserves/internal/economy"
	"BankReserves/internal/grid"
	"BankReserves/internal/model"
	"BankReserves/internal/recorder"
)

// Model is a population of persons banking with a single bank.
type Model struct {
	params  Params
	runID   string
	rng     *rand.Rand
	grid    *grid.Grid
	ledger  *bank.Ledger
	persons []*model.Person
	sched   *activation.RandomActivation
	rec     recorder.Recorder
	tick    int
	last    model.TickReport
}

// Option customises a Model at construction.
type Option func(*Model)

// WithRecorder sends every tick report to r.
func WithRecorder(r recorder.Recorder) Option {
	return func(m *Model) { m.rec = r }
}

// WithBehavior replaces the default banking behaviour.
func WithBehavior(b activation.Behavior) Option {
	return func(m *Model) { m.sched.Behavior = b }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(m *Model) { m.runID = id }
}

// WithPersons replaces the random initial population. The slice length
// overrides Params.Population; positions are still drawn at random.
func WithPersons(persons []*model.Person) Option {
	return func(m *Model) { m.persons = persons }
}

// New validates p, creates the bank and the persons, places them on random
// cells and records tick 0.
func New(p Params, opts ...Option) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	if p.Seed == 0 {
		p.Seed = uint64(time.Now().UnixNano())
	}

	g, err := grid.New(p.GridWidth, p.GridHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	m := &Model{
		params: p,
		runID:  uuid.NewString(),
		rng:    rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)),
		grid:   g,
		ledger: bank.NewLedger(p.ReservePercent),
		sched:  activation.NewRandomActivation(activation.Banking{}),
		rec:    recorder.NewNoopRecorder(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.persons == nil {
		m.persons = make([]*model.Person, p.Population)
		for i := range m.persons {
			m.persons[i] = &model.Person{ID: i + 1, Wallet: m.initialWallet()}
		}
	}
	m.params.Population = len(m.persons)
	if m.params.Population < 1 {
		return nil, fmt.Errorf("%w: population must be at least 1, got 0", ErrInvalidParams)
	}
	for _, person := range m.persons {
		person.Wealth = person.Savings - person.Loans
		m.ledger.Open(person.Savings, person.Loans)
		m.grid.Place(person, m.grid.RandomCell(m.rng))
	}
	m.ledger.Rebalance()

	if err := m.rec.RecordRun(&recorder.RunEvent{
		RunID:          m.runID,
		StartedAt:      time.Now(),
		Population:     m.params.Population,
		RichThreshold:  p.RichThreshold,
		ReservePercent: p.ReservePercent,
		InterestRate:   p.InterestRate,
		Seed:           p.Seed,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	m.last = m.report(economy.Result{
		TotalLoans:   economy.TotalLoans(m.persons),
		TotalSavings: economy.TotalSavings(m.persons),
		Census:       economy.TakeCensus(m.persons, p.RichThreshold),
	})
	m.publish()
	return m, nil
}

// initialWallet draws a whole amount in [1, RichThreshold+1].
func (m *Model) initialWallet() float64 {
	limit := m.params.RichThreshold
	if limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	return float64(m.rng.IntN(int(limit)+1) + 1)
}

// Persons implements economy.Population.
func (m *Model) Persons() []*model.Person { return m.persons }

// Bank returns the shared bank.
func (m *Model) Bank() *model.Bank { return m.ledger.Bank() }

// Grid returns the spatial substrate.
func (m *Model) Grid() *grid.Grid { return m.grid }

// Params returns the effective parameters, seed included.
func (m *Model) Params() Params { return m.params }

// RunID identifies this run in every recorded row.
func (m *Model) RunID() string { return m.runID }

// Tick is the number of completed steps.
func (m *Model) Tick() int { return m.tick }

// TotalLoans is the sum of all loans as of the most recent step.
func (m *Model) TotalLoans() float64 { return m.last.TotalLoans }

// Last returns the most recent tick report.
func (m *Model) Last() model.TickReport { return m.last }

// Step activates every person, applies interest and reclassifies. Recorder
// failures are logged and never abort the tick.
func (m *Model) Step(ctx context.Context) (model.TickReport, error) {
	if err := ctx.Err(); err != nil {
		return model.TickReport{}, err
	}
	m.sched.Step(m.persons, &activation.Env{Grid: m.grid, Ledger: m.ledger, Rand: m.rng})
	res := economy.Update(m, m.ledger.Bank(), m.params.InterestRate, m.params.RichThreshold)
	for _, p := range m.persons {
		p.Wealth = p.Savings - p.Loans
	}

	m.tick++
	m.last = m.report(res)
	m.publish()
	return m.last, nil
}

// Run performs n steps or stops early when ctx is done.
func (m *Model) Run(ctx context.Context, n int) error {
	log.Printf("[INFO] run %s: %d ticks, population %d", m.runID, n, len(m.persons))
	for i := 0; i < n; i++ {
		if _, err := m.Step(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", m.tick+1, err)
		}
	}
	log.Printf("[INFO] run %s finished at tick %d: total loans %.2f, total savings %.2f",
		m.runID, m.tick, m.last.TotalLoans, m.last.TotalSavings)
	return nil
}

func (m *Model) report(res economy.Result) model.TickReport {
	return model.TickReport{
		RunID:           m.runID,
		Tick:            m.tick,
		TotalLoans:      res.TotalLoans,
		TotalSavings:    res.TotalSavings,
		InterestAccrued: res.InterestAccrued,
		Census:          res.Census,
		Bank:            *m.ledger.Bank(),
	}
}

// AgentReports snapshots wealth and loans of every person.
func (m *Model) AgentReports() []model.AgentReport {
	out := make([]model.AgentReport, len(m.persons))
	for i, p := range m.persons {
		out[i] = model.AgentReport{RunID: m.runID, Tick: m.tick, PersonID: p.ID, Wealth: p.Wealth, Loans: p.Loans}
	}
	return out
}

func (m *Model) publish() {
	if err := m.rec.RecordTick(&m.last); err != nil {
		log.Printf("[ERROR] record tick %d: %v", m.tick, err)
	}
	if err := m.rec.RecordAgents(m.AgentReports()); err != nil {
		log.Printf("[ERROR] record agents at tick %d: %v", m.tick, err)
	}
}
