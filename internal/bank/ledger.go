// Package bank keeps the books of the single bank every person deals with.
package bank

import "BankReserves/internal/model"

// Ledger applies deposit and loan movements to a Bank.
type Ledger struct {
	state *model.Bank
}

// NewLedger creates a bank holding back reservePercent of its deposits.
func NewLedger(reservePercent float64) *Ledger {
	return &Ledger{state: &model.Bank{ReservePercent: reservePercent}}
}

// Wrap returns a Ledger over an existing Bank.
func Wrap(b *model.Bank) *Ledger { return &Ledger{state: b} }

// Bank exposes the underlying state.
func (l *Ledger) Bank() *model.Bank { return l.state }

// Deposit credits amount to the bank's deposits.
func (l *Ledger) Deposit(amount float64) {
	if amount <= 0 {
		return
	}
	l.state.Deposits += amount
}

// Withdraw debits amount from deposits.
func (l *Ledger) Withdraw(amount float64) {
	if amount <= 0 {
		return
	}
	l.state.Deposits -= amount
}

// Lend books a new loan of amount.
func (l *Ledger) Lend(amount float64) {
	if amount <= 0 {
		return
	}
	l.state.BankToLoan -= amount
	l.state.BankLoans += amount
}

// Repay books a repayment of amount.
func (l *Ledger) Repay(amount float64) {
	if amount <= 0 {
		return
	}
	l.state.BankToLoan += amount
	l.state.BankLoans -= amount
}

// Open enters a person's existing savings and loans on the books.
func (l *Ledger) Open(savings, loans float64) {
	l.Deposit(savings)
	if loans > 0 {
		l.state.BankLoans += loans
	}
}

// Rebalance recomputes the reserve and what is left to lend.
func (l *Ledger) Rebalance() {
	l.state.Reserves = l.state.ReservePercent * l.state.Deposits
	l.state.BankToLoan = l.state.Deposits - (l.state.Reserves + l.state.BankLoans)
}

// Lendable is the amount that can still be lent, never negative.
func (l *Ledger) Lendable() float64 {
	if l.state.BankToLoan < 0 {
		return 0
	}
	return l.state.BankToLoan
}
