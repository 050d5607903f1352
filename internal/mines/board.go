package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Outcome is what a single reveal did to the board.
type Outcome int

const (
	Continuing Outcome = iota
	HitMine
	Cleared
)

func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case HitMine:
		return "hit mine"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

type Board struct {
	Params
	cells []Cell // row-major
}

// NewBoard scatters p.MineCount mines uniformly at random and computes the
// neighbor counts before returning. No board is produced for invalid params.
func NewBoard(p Params, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	/*
	 * Write down every position, then pick mines off the list at random,
	 * swapping each pick out of the remaining range.
	 */
	candidates := make([]int, p.Width*p.Height)
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	mines := make([]int, 0, p.MineCount)
	for range p.MineCount {
		i := r.IntN(k)
		mines = append(mines, candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	b := newBoard(p, mines)
	Log.WithFields(logrus.Fields{
		"seed":  p.Seed(),
		"mines": len(mines),
	}).Debug("board generated")
	return b, nil
}

// newBoard lays mines at the given cell indices. Callers guarantee the
// indices are distinct and in range.
func newBoard(p Params, mines []int) *Board {
	b := &Board{
		Params: p,
		cells:  make([]Cell, p.Width*p.Height),
	}
	for _, i := range mines {
		b.cells[i].Mine = true
	}
	for i := range b.cells {
		c := 0
		for _, n := range b.Neighbors(p.point(i)) {
			if b.cells[p.index(n)].Mine {
				c++
			}
		}
		b.cells[i].AdjacentMines = c
	}
	return b
}

// check verifies a board loaded from outside: the mine total matches the
// params, counts match the layout and no open cell carries a flag.
func (b *Board) check() error {
	mines := 0
	for i, c := range b.cells {
		if c.Mine {
			mines++
		}
		if c.Revealed && c.Flagged {
			return fmt.Errorf("cell %v is both revealed and flagged", b.point(i))
		}
		n := 0
		for _, pt := range b.Neighbors(b.point(i)) {
			if b.cells[b.index(pt)].Mine {
				n++
			}
		}
		if c.AdjacentMines != n {
			return fmt.Errorf(
				"cell %v counts %d adjacent mines, layout has %d",
				b.point(i), c.AdjacentMines, n,
			)
		}
	}
	if mines != b.MineCount {
		return fmt.Errorf("%d mines on a board configured for %d", mines, b.MineCount)
	}
	return nil
}

// Cell returns a copy of the cell at pt.
func (b *Board) Cell(pt Point) (Cell, bool) {
	if !b.Contains(pt) {
		return Cell{}, false
	}
	return b.cells[b.index(pt)], true
}

// Neighbors lists the in-bounds positions around pt, pt itself excluded.
func (b *Board) Neighbors(pt Point) []Point {
	ns := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := Point{Row: pt.Row + dr, Col: pt.Col + dc}
			if (dr != 0 || dc != 0) && b.Contains(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

// RevealAt opens the cell at pt. Opening a cell with no mined neighbors
// keeps opening around it until the region is bordered by numbered cells;
// flags inside the region are cleared on the way. Out-of-bounds, open and
// flagged targets are left alone.
func (b *Board) RevealAt(pt Point) Outcome {
	if !b.Contains(pt) {
		return Continuing
	}
	target := &b.cells[b.index(pt)]
	if target.Revealed || target.Flagged {
		return Continuing
	}

	target.Reveal()
	if target.Mine {
		return HitMine
	}

	todo := []Point{pt}
	for len(todo) > 0 {
		cur := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if b.cells[b.index(cur)].AdjacentMines != 0 {
			continue
		}
		for _, n := range b.Neighbors(cur) {
			c := &b.cells[b.index(n)]
			// a zero cell has no mined neighbors, so the fill never opens a mine
			if c.Reveal() {
				todo = append(todo, n)
			}
		}
	}

	if b.IsCleared() {
		return Cleared
	}
	return Continuing
}

func (b *Board) ToggleFlagAt(pt Point) bool {
	if !b.Contains(pt) {
		return false
	}
	return b.cells[b.index(pt)].ToggleFlag()
}

// IsCleared reports whether every safe cell is open.
func (b *Board) IsCleared() bool {
	for _, c := range b.cells {
		if !c.Mine && !c.Revealed {
			return false
		}
	}
	return true
}

func (b *Board) FlagCount() (n int) {
	for _, c := range b.cells {
		if c.Flagged {
			n++
		}
	}
	return
}

func (b *Board) String() string {
	g := make(Grid, len(b.cells))
	for i, c := range b.cells {
		g[i] = c.State()
	}
	return g.ToString(b.Width)
}
