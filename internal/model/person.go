package model

// Pos is a cell on the grid.
type Pos struct {
	X, Y int
}

// Person is a single household agent.
type Person struct {
	ID      int     `json:"id"`
	Savings float64 `json:"savings"`
	Loans   float64 `json:"loans"`
	Wallet  float64 `json:"wallet"`
	Wealth  float64 `json:"wealth"`
	Pos     Pos     `json:"pos"`
}
