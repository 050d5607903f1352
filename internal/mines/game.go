package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown game status %q", text)
	}
	return nil
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Game runs one play session on one board at a time. It is not safe for
// concurrent use.
type Game struct {
	board  *Board
	status Status
	rnd    *rand.Rand
}

func NewGame(p Params, r *rand.Rand) (*Game, error) {
	g := &Game{rnd: r}
	if err := g.Start(p); err != nil {
		return nil, err
	}
	return g, nil
}

// Start replaces the board with a fresh one. On error the current board and
// status are kept.
func (g *Game) Start(p Params) error {
	if g.rnd == nil {
		g.rnd = NewRand()
	}
	board, err := NewBoard(p, g.rnd)
	if err != nil {
		return err
	}
	g.board = board
	g.status = InProgress
	return nil
}

// Restart starts over with the current dimensions and mine count.
func (g *Game) Restart() error {
	return g.Start(g.board.Params)
}

func (g *Game) Reveal(pt Point) Status {
	if g.status.Terminal() || !g.board.Contains(pt) {
		return g.status
	}
	switch g.board.RevealAt(pt) {
	case HitMine:
		g.status = Lost
	case Cleared:
		g.status = Won
	}
	return g.status
}

func (g *Game) ToggleFlag(pt Point) Status {
	if !g.status.Terminal() {
		g.board.ToggleFlagAt(pt)
	}
	return g.status
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Params() Params {
	return g.board.Params
}

func (g *Game) Cell(pt Point) (Cell, bool) {
	return g.board.Cell(pt)
}

// MinesLeft is the mine count minus the number of flags; it goes negative
// when the player over-flags.
func (g *Game) MinesLeft() int {
	return g.board.MineCount - g.board.FlagCount()
}

// View derives the grid shown to the player. Once the game is over every
// mine is exposed and flags are marked right or wrong.
func (g *Game) View() Grid {
	grid := make(Grid, len(g.board.cells))
	for i, c := range g.board.cells {
		s := c.State()
		if g.status.Terminal() {
			switch {
			case s == Flagged && c.Mine:
				s = CorrectFlag
			case s == Flagged:
				s = WrongFlag
			case s == Hidden && c.Mine:
				s = UnflaggedMine
			}
		}
		grid[i] = s
	}
	return grid
}

type gameState struct {
	Params Params
	Cells  []Cell
	Status Status
}

// [Game] implements [gob.GobEncoder]
func (g *Game) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gameState{
		Params: g.board.Params,
		Cells:  g.board.cells,
		Status: g.status,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Game] implements [gob.GobDecoder]
func (g *Game) GobDecode(data []byte) error {
	var state gameState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	if err := state.Params.Validate(); err != nil {
		return err
	}
	if len(state.Cells) != state.Params.Width*state.Params.Height {
		return fmt.Errorf(
			"corrupt game state: %d cells for a %dx%d board",
			len(state.Cells), state.Params.Width, state.Params.Height,
		)
	}
	board := &Board{Params: state.Params, cells: state.Cells}
	if err := board.check(); err != nil {
		return fmt.Errorf("corrupt game state: %w", err)
	}
	switch state.Status {
	case InProgress, Won, Lost:
	default:
		return fmt.Errorf("corrupt game state: unknown status %d", int(state.Status))
	}
	g.board = board
	g.status = state.Status
	return nil
}

func DecodeGame(buf []byte) (*Game, error) {
	var game Game
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
