package bank

import "testing"

func TestLedger_DepositAndRebalance(t *testing.T) {
	l := NewLedger(0.5)
	l.Deposit(100)
	l.Rebalance()

	b := l.Bank()
	if b.Reserves != 50 {
		t.Errorf("expected reserves 50, got %.2f", b.Reserves)
	}
	if b.BankToLoan != 50 {
		t.Errorf("expected 50 to loan, got %.2f", b.BankToLoan)
	}
}

func TestLedger_LendAndRepay(t *testing.T) {
	l := NewLedger(0.1)
	l.Deposit(200)
	l.Rebalance()

	l.Lend(80)
	if l.Bank().BankLoans != 80 {
		t.Errorf("expected bank loans 80, got %.2f", l.Bank().BankLoans)
	}
	if l.Lendable() != 100 {
		t.Errorf("expected lendable 100, got %.2f", l.Lendable())
	}

	l.Repay(30)
	l.Rebalance()
	if l.Bank().BankLoans != 50 {
		t.Errorf("expected bank loans 50, got %.2f", l.Bank().BankLoans)
	}
	if l.Bank().BankToLoan != 130 {
		t.Errorf("expected 130 to loan, got %.2f", l.Bank().BankToLoan)
	}
}

func TestLedger_LendableNeverNegative(t *testing.T) {
	l := NewLedger(1)
	l.Deposit(10)
	l.Lend(5)
	l.Rebalance()
	if l.Bank().BankToLoan >= 0 {
		t.Fatalf("expected negative raw balance, got %.2f", l.Bank().BankToLoan)
	}
	if l.Lendable() != 0 {
		t.Errorf("expected lendable 0, got %.2f", l.Lendable())
	}
}

func TestLedger_IgnoresNonPositiveAmounts(t *testing.T) {
	l := NewLedger(0.2)
	l.Deposit(-5)
	l.Withdraw(0)
	l.Lend(-1)
	l.Repay(-1)
	if b := l.Bank(); b.Deposits != 0 || b.BankLoans != 0 || b.BankToLoan != 0 {
		t.Errorf("expected untouched bank, got %+v", *b)
	}
}

func TestLedger_OpenBooksExistingBalances(t *testing.T) {
	l := NewLedger(0.5)
	l.Open(100, 50)
	l.Open(0, 0)
	l.Rebalance()

	b := l.Bank()
	if b.Deposits != 100 || b.BankLoans != 50 || b.Reserves != 50 {
		t.Errorf("unexpected bank %+v", *b)
	}
	if l.Lendable() != 0 {
		t.Errorf("expected nothing left to lend, got %.2f", l.Lendable())
	}
}
