package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by New when a construction parameter is out
// of range.
var ErrInvalidParams = errors.New("invalid model parameters")

// DefaultInterestRate is the per-tick loan interest used when none is given.
const DefaultInterestRate = 0.05

// DefaultGridSize is the side length of the grid used when none is given.
const DefaultGridSize = 20

// Params are the construction inputs of a Model.
type Params struct {
	Population     int
	RichThreshold  float64
	ReservePercent float64 // fraction of deposits held back, 0..1
	InterestRate   float64
	GridWidth      int
	GridHeight     int
	Seed           uint64 // 0 picks a time-based seed
}

// DefaultParams mirrors the stock configuration.
func DefaultParams() Params {
	return Params{
		Population:     25,
		RichThreshold:  10,
		ReservePercent: 0.5,
		InterestRate:   DefaultInterestRate,
		GridWidth:      DefaultGridSize,
		GridHeight:     DefaultGridSize,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.Population < 1:
		return fmt.Errorf("%w: population must be at least 1, got %d", ErrInvalidParams, p.Population)
	case p.RichThreshold < 0:
		return fmt.Errorf("%w: rich_threshold must be non-negative, got %g", ErrInvalidParams, p.RichThreshold)
	case p.ReservePercent < 0 || p.ReservePercent > 1:
		return fmt.Errorf("%w: reserve_percent must be within [0,1], got %g", ErrInvalidParams, p.ReservePercent)
	case p.InterestRate < 0:
		return fmt.Errorf("%w: interest_rate must be non-negative, got %g", ErrInvalidParams, p.InterestRate)
	case p.GridWidth < 0 || p.GridHeight < 0:
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidParams, p.GridWidth, p.GridHeight)
	}
	return nil
}

func (p Params) withDefaults() Params {
	if p.GridWidth == 0 {
		p.GridWidth = DefaultGridSize
	}
	if p.GridHeight == 0 {
		p.GridHeight = DefaultGridSize
	}
	return p
}
