// Package economy applies the per-tick interest and wealth-tier rule to a
// population of persons sharing one bank.
package economy

import "BankReserves/internal/model"

// PoorCutoff is the savings level below which a person is poor.
const PoorCutoff = 10.0

// Population yields the persons a rule is applied to.
type Population interface {
	Persons() []*model.Person
}

// Slice adapts a plain slice to Population.
type Slice []*model.Person

func (s Slice) Persons() []*model.Person { return s }

// Result is the outcome of one Update.
type Result struct {
	TotalLoans      float64
	TotalSavings    float64
	InterestAccrued float64
	Census          model.Census
}

// ApplyInterest grows every positive loan balance by rate and books the same
// amount on the bank. It returns the total interest added.
func ApplyInterest(persons []*model.Person, bank *model.Bank, rate float64) float64 {
	var accrued float64
	for _, p := range persons {
		if p.Loans > 0 {
			interest := p.Loans * rate
			p.Loans += interest
			bank.BankLoans += interest
			accrued += interest
		}
	}
	return accrued
}

// TotalLoans sums outstanding loans.
func TotalLoans(persons []*model.Person) float64 {
	var sum float64
	for _, p := range persons {
		sum += p.Loans
	}
	return sum
}

// TotalSavings sums savings.
func TotalSavings(persons []*model.Person) float64 {
	var sum float64
	for _, p := range persons {
		sum += p.Savings
	}
	return sum
}

// Classify maps a savings level to its tier. Both boundaries fall in the
// middle tier.
func Classify(savings, richThreshold float64) model.Tier {
	switch {
	case savings > richThreshold:
		return model.TierRich
	case savings < PoorCutoff:
		return model.TierPoor
	default:
		return model.TierMiddle
	}
}

// TakeCensus counts persons per tier.
func TakeCensus(persons []*model.Person, richThreshold float64) model.Census {
	var c model.Census
	for _, p := range persons {
		switch Classify(p.Savings, richThreshold) {
		case model.TierRich:
			c.Rich++
		case model.TierPoor:
			c.Poor++
		default:
			c.Middle++
		}
	}
	return c
}

// Update runs the full rule: interest first, then aggregates and census, so
// TotalLoans always matches the balances the persons hold afterwards.
func Update(pop Population, bank *model.Bank, interestRate, richThreshold float64) Result {
	persons := pop.Persons()
	accrued := ApplyInterest(persons, bank, interestRate)
	return Result{
		TotalLoans:      TotalLoans(persons),
		TotalSavings:    TotalSavings(persons),
		InterestAccrued: accrued,
		Census:          TakeCensus(persons, richThreshold),
	}
}
