// Package activation runs every person's own behaviour once per tick in a
// random order before the economic rule is applied.
package activation

import (
	"math/rand/v2"

	"BankReserves/internal/bank"
	"BankReserves/internal/grid"
	"BankReserves/internal/model"
)

// Env is what a behaviour may read and change while a person acts.
type Env struct {
	Grid   *grid.Grid
	Ledger *bank.Ledger
	Rand   *rand.Rand
}

// Behavior is the per-person action taken on activation.
type Behavior interface {
	Act(p *model.Person, env *Env)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(p *model.Person, env *Env)

func (f BehaviorFunc) Act(p *model.Person, env *Env) { f(p, env) }

// RandomActivation activates each person exactly once per step, reshuffling
// the order every step.
type RandomActivation struct {
	Behavior Behavior
	order    []*model.Person
}

// NewRandomActivation creates a scheduler using b for every person.
func NewRandomActivation(b Behavior) *RandomActivation {
	return &RandomActivation{Behavior: b}
}

// Step activates persons one after another on the calling goroutine.
func (s *RandomActivation) Step(persons []*model.Person, env *Env) {
	s.order = append(s.order[:0], persons...)
	env.Rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	for _, p := range s.order {
		s.Behavior.Act(p, env)
	}
}
