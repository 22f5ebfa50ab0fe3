package model

// Tier is a wealth class.
type Tier string

const (
	TierRich   Tier = "RICH"
	TierMiddle Tier = "MIDDLE"
	TierPoor   Tier = "POOR"
)

// Census counts persons per tier for one tick.
type Census struct {
	Rich   int `json:"rich"`
	Middle int `json:"middle"`
	Poor   int `json:"poor"`
}

// Total returns the number of persons counted.
func (c Census) Total() int { return c.Rich + c.Middle + c.Poor }

// TickReport is the model-level record emitted after every step.
type TickReport struct {
	RunID           string  `json:"run_id"`
	Tick            int     `json:"tick"`
	TotalLoans      float64 `json:"total_loans"`
	TotalSavings    float64 `json:"total_savings"`
	InterestAccrued float64 `json:"interest_accrued"`
	Census          Census  `json:"census"`
	Bank            Bank    `json:"bank"`
}

// AgentReport is the per-person record emitted after every step.
type AgentReport struct {
	RunID    string  `json:"run_id"`
	Tick     int     `json:"tick"`
	PersonID int     `json:"person_id"`
	Wealth   float64 `json:"wealth"`
	Loans    float64 `json:"loans"`
}
