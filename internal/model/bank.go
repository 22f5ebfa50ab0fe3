package model

// Bank is the single lender shared by every Person in a model.
type Bank struct {
	ReservePercent float64 `json:"reserve_percent"` // fraction of deposits held back, 0..1
	BankLoans      float64 `json:"bank_loans"`      // outstanding, interest-bearing
	Deposits       float64 `json:"deposits"`
	Reserves       float64 `json:"reserves"`
	BankToLoan     float64 `json:"bank_to_loan"`
}
