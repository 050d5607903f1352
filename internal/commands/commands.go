// Package commands implements the line based command language spoken over
// the game's websocket.
//
//	g            no-op, replies with the current state
//	o ROW COL    reveal a cell
//	f ROW COL    toggle a flag
//	n [W:H:M]    start over, optionally with new params
package commands

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Kind string

const (
	Noop    Kind = "g"
	Reveal  Kind = "o"
	Flag    Kind = "f"
	Restart Kind = "n"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
)

type Command struct {
	Kind   Kind
	Point  mines.Point
	Params *mines.Params // only for Restart; nil keeps the current params
}

func parsePoint(twoStrings []string) (pt mines.Point, err error) {
	if pt.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if pt.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	cmd := Command{Kind: Kind(parts[0])}
	args := parts[1:]
	switch cmd.Kind {
	case Noop:
		if len(args) != 0 {
			return Command{}, ErrArgCount
		}
	case Reveal, Flag:
		if len(args) != 2 {
			return Command{}, ErrArgCount
		}
		pt, err := parsePoint(args)
		if err != nil {
			return Command{}, err
		}
		cmd.Point = pt
	case Restart:
		switch len(args) {
		case 0:
		case 1:
			p, err := mines.ParseSeed(args[0])
			if err != nil {
				return Command{}, err
			}
			cmd.Params = &p
		default:
			return Command{}, ErrArgCount
		}
	default:
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	return cmd, nil
}

// Execute applies c to g. Coordinates are checked against the board so the
// caller can tell the player about a bad move instead of silently dropping it.
func Execute(g *mines.Game, c Command) error {
	switch c.Kind {
	case Noop:
		return nil
	case Reveal, Flag:
		if !g.Params().Contains(c.Point) {
			return fmt.Errorf("%w: %d %d", mines.ErrOutOfBounds, c.Point.Row, c.Point.Col)
		}
		if c.Kind == Reveal {
			g.Reveal(c.Point)
		} else {
			g.ToggleFlag(c.Point)
		}
		return nil
	case Restart:
		if c.Params == nil {
			return g.Restart()
		}
		return g.Start(*c.Params)
	}
	return ErrUnknownCommand
}

// Lines splits a message into its non-empty trimmed lines.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// Run parses and executes every line of a batch, stopping at the first
// error. It returns the commands that were executed.
func Run(g *mines.Game, batch string) ([]Command, error) {
	var done []Command
	for _, line := range Lines(batch) {
		c, err := Parse(line)
		if err != nil {
			return done, err
		}
		if err := Execute(g, c); err != nil {
			return done, err
		}
		done = append(done, c)
	}
	return done, nil
}

// Restarted reports whether any of cs dealt a new board.
func Restarted(cs []Command) bool {
	for _, c := range cs {
		if c.Kind == Restart {
			return true
		}
	}
	return false
}
