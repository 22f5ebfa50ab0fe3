package simulation

import (
	"context"
	"errors"
	"math"
	"testing"

	"BankReserves/internal/activation"
	"BankReserves/internal/model"
	"BankReserves/internal/recorder"
)

var idle = activation.BehaviorFunc(func(*model.Person, *activation.Env) {})

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func single(t *testing.T, p *model.Person, rate float64, opts ...Option) *Model {
	t.Helper()
	params := DefaultParams()
	params.RichThreshold = 1000
	params.InterestRate = rate
	params.Seed = 1
	opts = append([]Option{WithPersons([]*model.Person{p}), WithBehavior(idle)}, opts...)
	m, err := New(params, opts...)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestNew_RejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero population", func(p *Params) { p.Population = 0 }},
		{"negative population", func(p *Params) { p.Population = -3 }},
		{"negative threshold", func(p *Params) { p.RichThreshold = -1 }},
		{"reserve above one", func(p *Params) { p.ReservePercent = 1.5 }},
		{"negative reserve", func(p *Params) { p.ReservePercent = -0.1 }},
		{"negative rate", func(p *Params) { p.InterestRate = -0.01 }},
		{"negative grid", func(p *Params) { p.GridWidth = -1 }},
	}
	for _, tt := range tests {
		p := DefaultParams()
		tt.mutate(&p)
		if _, err := New(p); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("%s: expected ErrInvalidParams, got %v", tt.name, err)
		}
	}
}

func TestNew_PlacesEveryPerson(t *testing.T) {
	p := DefaultParams()
	p.Population = 40
	p.Seed = 99
	m, err := New(p)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if len(m.Persons()) != 40 {
		t.Fatalf("expected 40 persons, got %d", len(m.Persons()))
	}
	placed := 0
	for x := 0; x < m.Grid().Width; x++ {
		for y := 0; y < m.Grid().Height; y++ {
			placed += len(m.Grid().CellMates(model.Pos{X: x, Y: y}))
		}
	}
	if placed != 40 {
		t.Errorf("expected 40 persons on the grid, got %d", placed)
	}
	for _, person := range m.Persons() {
		if person.Wallet < 1 || person.Wallet > p.RichThreshold+1 {
			t.Errorf("person %d: wallet %.0f outside [1, %.0f]", person.ID, person.Wallet, p.RichThreshold+1)
		}
	}
}

func TestNew_RecordsTickZero(t *testing.T) {
	rec := recorder.NewMemoryRecorder()
	single(t, &model.Person{Loans: 100}, 0.05, WithRecorder(rec), WithRunID("fixed"))

	if len(rec.Runs) != 1 || rec.Runs[0].RunID != "fixed" {
		t.Fatalf("expected one run record, got %+v", rec.Runs)
	}
	if len(rec.Ticks) != 1 || rec.Ticks[0].Tick != 0 {
		t.Fatalf("expected tick 0 record, got %+v", rec.Ticks)
	}
	if rec.Ticks[0].TotalLoans != 100 {
		t.Errorf("tick 0 must not apply interest, got total loans %.2f", rec.Ticks[0].TotalLoans)
	}
}

func TestStep_IndebtedPoorAgent(t *testing.T) {
	p := &model.Person{Savings: 0, Loans: 100}
	m := single(t, p, 0.05)
	before := m.Bank().BankLoans

	rep, err := m.Step(context.Background())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !almostEqual(p.Loans, 105) {
		t.Errorf("expected loans 105, got %.4f", p.Loans)
	}
	if !almostEqual(m.Bank().BankLoans-before, 5) {
		t.Errorf("expected bank loans +5, got %+.4f", m.Bank().BankLoans-before)
	}
	if !almostEqual(m.TotalLoans(), 105) || !almostEqual(rep.TotalLoans, 105) {
		t.Errorf("expected total loans 105, got %.4f", m.TotalLoans())
	}
	if rep.Census != (model.Census{Poor: 1}) {
		t.Errorf("expected poor, got %+v", rep.Census)
	}
	if !almostEqual(p.Wealth, -105) {
		t.Errorf("expected wealth -105, got %.4f", p.Wealth)
	}
}

func TestStep_RichAgent(t *testing.T) {
	p := &model.Person{Savings: 2000}
	m := single(t, p, 0.05)

	rep, _ := m.Step(context.Background())
	if p.Loans != 0 || m.Bank().BankLoans != 0 {
		t.Errorf("expected no loans, got person %.2f bank %.2f", p.Loans, m.Bank().BankLoans)
	}
	if rep.Census != (model.Census{Rich: 1}) {
		t.Errorf("expected rich, got %+v", rep.Census)
	}
}

func TestStep_MiddleAtCutoff(t *testing.T) {
	m := single(t, &model.Person{Savings: 10}, 0.05)
	rep, _ := m.Step(context.Background())
	if rep.Census != (model.Census{Middle: 1}) {
		t.Errorf("expected middle, got %+v", rep.Census)
	}
}

func TestStep_ZeroRate(t *testing.T) {
	p := &model.Person{Loans: 100}
	m := single(t, p, 0)
	for i := 0; i < 25; i++ {
		if _, err := m.Step(context.Background()); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if p.Loans != 100 || m.Bank().BankLoans != 0 {
		t.Errorf("expected unchanged loans, got person %.2f bank %.2f", p.Loans, m.Bank().BankLoans)
	}
	if m.Tick() != 25 {
		t.Errorf("expected tick 25, got %d", m.Tick())
	}
}

func TestStep_CanceledContext(t *testing.T) {
	m := single(t, &model.Person{}, 0.05)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Step(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if m.Tick() != 0 {
		t.Errorf("canceled step must not advance the tick, got %d", m.Tick())
	}
}

func TestRun_InvariantsWithBankingBehavior(t *testing.T) {
	p := DefaultParams()
	p.Population = 60
	p.RichThreshold = 20
	p.ReservePercent = 0.25
	p.Seed = 2024
	rec := recorder.NewMemoryRecorder()
	m, err := New(p, WithRecorder(rec))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	for tick := 1; tick <= 100; tick++ {
		rep, err := m.Step(context.Background())
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		var sum float64
		for _, person := range m.Persons() {
			if person.Savings < 0 || person.Loans < 0 {
				t.Fatalf("tick %d: negative balance %+v", tick, *person)
			}
			sum += person.Loans
		}
		if math.Abs(sum-rep.TotalLoans) > 1e-6 {
			t.Fatalf("tick %d: total loans %.6f, sum %.6f", tick, rep.TotalLoans, sum)
		}
		if rep.Census.Total() != p.Population {
			t.Fatalf("tick %d: census %+v does not cover %d persons", tick, rep.Census, p.Population)
		}
	}
	if len(rec.Ticks) != 101 {
		t.Errorf("expected 101 tick records, got %d", len(rec.Ticks))
	}
	if len(rec.Agents) != 101*p.Population {
		t.Errorf("expected %d agent records, got %d", 101*p.Population, len(rec.Agents))
	}
}

func TestRun_SameSeedSameOutcome(t *testing.T) {
	p := DefaultParams()
	p.Seed = 7
	a, _ := New(p)
	b, _ := New(p)
	if err := a.Run(context.Background(), 30); err != nil {
		t.Fatalf("run a: %v", err)
	}
	if err := b.Run(context.Background(), 30); err != nil {
		t.Fatalf("run b: %v", err)
	}
	ra, rb := a.Last(), b.Last()
	if ra.TotalLoans != rb.TotalLoans || ra.TotalSavings != rb.TotalSavings || ra.Census != rb.Census {
		t.Errorf("same seed diverged: %+v vs %+v", ra, rb)
	}
}

func TestRun_LoansNonDecreasingWithoutRepayment(t *testing.T) {
	persons := []*model.Person{{Loans: 1}, {Loans: 0}, {Loans: 50, Savings: 3}}
	p := DefaultParams()
	p.InterestRate = 0.02
	m, err := New(p, WithPersons(persons), WithBehavior(idle))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	prev := []float64{1, 0, 50}
	for tick := 0; tick < 40; tick++ {
		m.Step(context.Background())
		for i, person := range persons {
			if person.Loans < prev[i] {
				t.Fatalf("tick %d: loans of %d fell from %.4f to %.4f", tick, i, prev[i], person.Loans)
			}
			prev[i] = person.Loans
		}
	}
	if persons[1].Loans != 0 {
		t.Errorf("debt-free person accrued interest: %.4f", persons[1].Loans)
	}
}

func TestNew_BooksSuppliedBalances(t *testing.T) {
	p := DefaultParams()
	p.Seed = 3
	persons := []*model.Person{{Savings: 100, Loans: 50}, {Savings: 4}, {Loans: 7}}
	m, err := New(p, WithPersons(persons))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if b := m.Last().Bank; b.Deposits != 104 || b.BankLoans != 57 || b.Reserves != 52 {
		t.Fatalf("tick 0 bank does not match supplied balances: %+v", b)
	}

	for tick := 1; tick <= 30; tick++ {
		m.Step(context.Background())
		b := m.Bank()
		if b.Deposits < 0 || b.BankLoans < 0 || b.Reserves < 0 {
			t.Fatalf("tick %d: negative bank books %+v", tick, *b)
		}
		var savings, loans float64
		for _, person := range persons {
			savings += person.Savings
			loans += person.Loans
		}
		if !almostEqual(b.Deposits, savings) || !almostEqual(b.BankLoans, loans) {
			t.Fatalf("tick %d: bank %+v out of step with savings %.4f loans %.4f", tick, *b, savings, loans)
		}
	}
}
