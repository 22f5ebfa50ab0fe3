// Package grid is a toroidal multi-grid: any number of persons may share a
// cell and the edges wrap around.
package grid

import (
	"fmt"
	"math/rand/v2"

	"BankReserves/internal/model"
)

// Grid tracks which persons stand on which cell.
type Grid struct {
	Width  int
	Height int
	cells  map[model.Pos][]*model.Person
}

// New creates an empty width×height torus.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{Width: width, Height: height, cells: make(map[model.Pos][]*model.Person)}, nil
}

// Wrap folds any coordinate back onto the torus.
func (g *Grid) Wrap(p model.Pos) model.Pos {
	return model.Pos{X: mod(p.X, g.Width), Y: mod(p.Y, g.Height)}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// RandomCell picks a uniformly random cell.
func (g *Grid) RandomCell(rng *rand.Rand) model.Pos {
	return model.Pos{X: rng.IntN(g.Width), Y: rng.IntN(g.Height)}
}

// Place puts p on pos.
func (g *Grid) Place(p *model.Person, pos model.Pos) {
	pos = g.Wrap(pos)
	p.Pos = pos
	g.cells[pos] = append(g.cells[pos], p)
}

// Move relocates p from its current cell to pos.
func (g *Grid) Move(p *model.Person, pos model.Pos) {
	g.remove(p)
	g.Place(p, pos)
}

func (g *Grid) remove(p *model.Person) {
	occupants := g.cells[p.Pos]
	for i, o := range occupants {
		if o == p {
			occupants = append(occupants[:i], occupants[i+1:]...)
			break
		}
	}
	if len(occupants) == 0 {
		delete(g.cells, p.Pos)
		return
	}
	g.cells[p.Pos] = occupants
}

// CellMates lists every person on pos, including any caller standing there.
func (g *Grid) CellMates(pos model.Pos) []*model.Person {
	return g.cells[g.Wrap(pos)]
}

// Neighborhood returns the Moore neighbourhood of pos (radius 1, centre
// excluded). On grids smaller than 3 cells wide wrapped duplicates are
// dropped.
func (g *Grid) Neighborhood(pos model.Pos) []model.Pos {
	seen := make(map[model.Pos]bool, 8)
	out := make([]model.Pos, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := g.Wrap(model.Pos{X: pos.X + dx, Y: pos.Y + dy})
			if n == g.Wrap(pos) || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// RandomHop moves p to a random neighbouring cell. On a 1×1 grid it stays put.
func (g *Grid) RandomHop(p *model.Person, rng *rand.Rand) {
	steps := g.Neighborhood(p.Pos)
	if len(steps) == 0 {
		return
	}
	g.Move(p, steps[rng.IntN(len(steps))])
}
