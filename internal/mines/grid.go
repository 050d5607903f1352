package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden        CellState = -2
	Flagged       CellState = -1
	CorrectFlag   CellState = 64 // post-game-over
	Detonated     CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
	// 0-8 for an open cell with the given number of mined neighbors
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "."
	case Flagged, CorrectFlag:
		return "F"
	case Detonated:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "*"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Open reports whether the state is an uncovered non-mine cell.
func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

// Grid is a row-major list of cell states as shown to the player.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
