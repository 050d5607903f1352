package mines

type Point struct {
	Row, Col int
}

// Cell is the source of truth for a single board position. Mine and
// AdjacentMines are fixed when the owning [Board] is built.
type Cell struct {
	Mine          bool
	Flagged       bool
	Revealed      bool
	AdjacentMines int
}

// Reveal opens the cell and drops any flag on it. It reports whether the
// cell changed; opening an open cell does nothing.
func (c *Cell) Reveal() bool {
	if c.Revealed {
		return false
	}
	c.Revealed = true
	c.Flagged = false
	return true
}

// ToggleFlag flips the guess marker of a hidden cell.
func (c *Cell) ToggleFlag() bool {
	if c.Revealed {
		return false
	}
	c.Flagged = !c.Flagged
	return true
}

// State derives what a player is allowed to see of the cell while the game
// is running.
func (c Cell) State() CellState {
	switch {
	case !c.Revealed && c.Flagged:
		return Flagged
	case !c.Revealed:
		return Hidden
	case c.Mine:
		return Detonated
	default:
		return CellState(c.AdjacentMines)
	}
}
