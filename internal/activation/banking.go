package activation

import "BankReserves/internal/model"

// tradeAmounts are the two sizes a cellmate transaction can take.
var tradeAmounts = [...]float64{5, 2}

// Banking is the default person behaviour: hop to a neighbouring cell, maybe
// trade with someone there, then settle the wallet against savings and loans.
type Banking struct{}

func (Banking) Act(p *model.Person, env *Env) {
	env.Grid.RandomHop(p, env.Rand)
	if p.Savings > 0 || p.Wallet > 0 || env.Ledger.Lendable() > 0 {
		doBusiness(p, env)
	}
	balanceBooks(p, env)
	env.Ledger.Rebalance()
}

func doBusiness(p *model.Person, env *Env) {
	mates := env.Grid.CellMates(p.Pos)
	if len(mates) < 2 {
		return
	}
	others := make([]*model.Person, 0, len(mates)-1)
	for _, m := range mates {
		if m != p {
			others = append(others, m)
		}
	}
	customer := others[env.Rand.IntN(len(others))]
	if env.Rand.IntN(2) != 0 {
		return
	}
	amount := tradeAmounts[env.Rand.IntN(len(tradeAmounts))]
	customer.Wallet += amount
	p.Wallet -= amount
}

func balanceBooks(p *model.Person, env *Env) {
	if p.Wallet < 0 {
		if p.Savings >= -p.Wallet {
			withdraw(p, env, -p.Wallet)
		} else {
			if p.Savings > 0 {
				withdraw(p, env, p.Savings)
			}
			takeLoan(p, env, min(env.Ledger.Lendable(), -p.Wallet))
		}
	} else {
		deposit(p, env, p.Wallet)
	}

	if p.Loans > 0 && p.Savings > 0 {
		amount := min(p.Savings, p.Loans)
		withdraw(p, env, amount)
		repay(p, env, amount)
	}
	p.Wealth = p.Savings - p.Loans
}

func deposit(p *model.Person, env *Env, amount float64) {
	if amount <= 0 {
		return
	}
	p.Wallet -= amount
	p.Savings += amount
	env.Ledger.Deposit(amount)
}

func withdraw(p *model.Person, env *Env, amount float64) {
	if amount <= 0 {
		return
	}
	p.Wallet += amount
	p.Savings -= amount
	env.Ledger.Withdraw(amount)
}

func takeLoan(p *model.Person, env *Env, amount float64) {
	if amount <= 0 {
		return
	}
	env.Ledger.Lend(amount)
	p.Wallet += amount
	p.Loans += amount
}

func repay(p *model.Person, env *Env, amount float64) {
	if amount <= 0 {
		return
	}
	p.Loans -= amount
	p.Wallet -= amount
	env.Ledger.Repay(amount)
}
