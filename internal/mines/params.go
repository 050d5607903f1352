package mines

import (
	"fmt"
	"strings"
)

// MaxCells bounds Width*Height so a board always fits comfortably in memory.
const MaxCells = 1 << 20

type Params struct {
	Width, Height, MineCount int
}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Validate reports an [ErrInvalidConfiguration] when the board would have no
// cells, more than [MaxCells] cells or no room for at least one safe cell.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf(
			"%w: board dimensions must be positive (width = %d, height = %d)",
			ErrInvalidConfiguration, p.Width, p.Height,
		)
	}
	if p.Width > MaxCells/p.Height {
		return fmt.Errorf(
			"%w: a %dx%d board exceeds %d cells",
			ErrInvalidConfiguration, p.Width, p.Height, MaxCells,
		)
	}
	if p.MineCount < 0 {
		return fmt.Errorf(
			"%w: mine count must not be negative (mine_count = %d)",
			ErrInvalidConfiguration, p.MineCount,
		)
	}
	if p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"%w: %d mines do not fit in a %dx%d board",
			ErrInvalidConfiguration, p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (Params, error) {
	var p Params
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return Params{}, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p Params) Contains(pt Point) bool {
	return 0 <= pt.Row && pt.Row < p.Height && 0 <= pt.Col && pt.Col < p.Width
}

func (p Params) index(pt Point) int {
	return pt.Row*p.Width + pt.Col
}

func (p Params) point(i int) Point {
	return Point{Row: i / p.Width, Col: i % p.Width}
}
