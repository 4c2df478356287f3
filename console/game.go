package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/you/4inarow/analytics"
	"github.com/you/4inarow/engine"
)

type Mode string

const (
	ModeEasy Mode = "easy" // computer drops at random
	ModeHard Mode = "hard"
	ModeHell Mode = "hell" // hard without redrawing the board
	ModePvP  Mode = "pvp"
)

var menu = []Mode{ModeEasy, ModeHard, ModeHell, ModePvP}

func ParseMode(s string) (Mode, bool) {
	for _, m := range menu {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

type Result struct {
	Winner engine.Player
	Won    bool
}

// Console owns the terminal streams shared by every game of one run.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewScanner(r), out: w}
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) ChooseMode() (Mode, error) {
	fmt.Fprint(c.out, "\nChoose a mode to play:\n1 -> Easy mode\n2 -> Hard mode\n3 -> Hell mode\n4 -> 2-player mode\nEnter your choice(1|2|3|4): ")
	for {
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(menu) {
			return menu[n-1], nil
		}
	}
}

func (c *Console) AskYesNo(hint string) (bool, error) {
	fmt.Fprint(c.out, hint)
	for {
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

type Session struct {
	ID     uuid.UUID
	Mode   Mode
	State  *engine.GameState
	Engine *engine.Engine
	Rng    *rand.Rand
	Events *analytics.Analytics
	Con    *Console
}

func label(mode Mode, p engine.Player) string {
	if mode == ModePvP {
		if p == engine.Human {
			return "Player A"
		}
		return "Player B"
	}
	if p == engine.Human {
		return "You"
	}
	return "Computer"
}

// Run plays until someone connects four or the board fills up.
func (s *Session) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	s.Events.Emit("match.start", map[string]any{
		"gameId": s.ID.String(), "mode": string(s.Mode),
		"p1": label(s.Mode, engine.Human), "p2": label(s.Mode, engine.Computer),
	})
	if s.Mode != ModeHell {
		fmt.Fprint(s.Con.out, s.State)
	}

	for {
		if who, ok := s.State.FindWinner(); ok {
			return s.finish(Result{Winner: who, Won: true}, started), nil
		}
		if s.State.IsFull() {
			return s.finish(Result{}, started), nil
		}

		mover := s.State.Turn
		col, err := s.nextColumn(ctx)
		if err != nil {
			return Result{}, err
		}
		row := s.State.Apply(col)
		s.Events.Emit("move", map[string]any{
			"gameId": s.ID.String(), "by": label(s.Mode, mover), "col": col, "row": row,
		})
		if s.Mode != ModeHell {
			fmt.Fprint(s.Con.out, s.State)
		}
	}
}

func (s *Session) nextColumn(ctx context.Context) (int, error) {
	if s.Mode == ModePvP || s.State.Turn == engine.Human {
		return s.askColumn()
	}
	if s.Mode == ModeEasy {
		col := engine.RandomLegalColumn(s.State, s.Rng)
		row, _ := s.State.LandingRow(col)
		fmt.Fprintf(s.Con.out, "Computer makes a move (%d,%d).\n", col, row)
		return col, nil
	}

	fmt.Fprintln(s.Con.out, "Computer is thinking...")
	d, err := s.Engine.Decide(ctx, s.State)
	if err != nil {
		return engine.Full, err
	}
	s.Events.Emit("decision", map[string]any{
		"gameId": s.ID.String(), "col": d.Column, "score": d.Score, "fallback": d.Fallback,
		"nodes": d.Nodes, "elapsedMs": d.Elapsed.Milliseconds(),
	})
	row, _ := s.State.LandingRow(d.Column)
	fmt.Fprintf(s.Con.out, "It makes the move (%d, %d) (%d)\n", d.Column, row, d.Score)
	return d.Column, nil
}

func (s *Session) askColumn() (int, error) {
	if s.Mode == ModePvP {
		fmt.Fprintf(s.Con.out, "%s makes a move: ", label(s.Mode, s.State.Turn))
	} else {
		fmt.Fprint(s.Con.out, "Your move: ")
	}
	for {
		line, err := s.Con.readLine()
		if err != nil {
			return engine.Full, err
		}
		if col, err := strconv.Atoi(line); err == nil {
			if row, ok := s.State.LandingRow(col); ok && s.State.IsLegalDrop(col, row) {
				return col, nil
			}
		}
		fmt.Fprintln(s.Con.out, "Illegal input, try again.")
	}
}

func (s *Session) finish(r Result, started time.Time) Result {
	winner := ""
	switch {
	case !r.Won:
		fmt.Fprintln(s.Con.out, "Tie.")
	case s.Mode == ModePvP:
		fmt.Fprintf(s.Con.out, "%s wins.\n", label(s.Mode, r.Winner))
	case r.Winner == engine.Human:
		fmt.Fprintln(s.Con.out, "You win.")
	default:
		fmt.Fprintln(s.Con.out, "You lose.")
	}
	if r.Won {
		winner = strings.ToLower(label(s.Mode, r.Winner))
		if s.Mode != ModePvP {
			winner = r.Winner.String()
		}
	}
	reason := "draw"
	if r.Won {
		reason = "win"
	}
	s.Events.Emit("game.end", map[string]any{
		"gameId": s.ID.String(), "winner": winner, "reason": reason,
		"duration": time.Since(started).String(), "moves": s.State.MovesPlayed,
	})
	return r
}
