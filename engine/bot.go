package engine

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
)

// Scores are always from the computer's point of view. Neutral is the
// lowest so that any decided line beats a cut-off one.
const (
	WinScore     = 1000
	LoseScore    = 0
	NeutralScore = -1000

	DefaultMaxDepth = 8
)

type Decision struct {
	Column   int
	Score    int
	Fallback bool  // Column came from the win tally, not the search score
	Tally    []int // raw wins observed per column during this decision
	Nodes    int
	Elapsed  time.Duration
}

type Engine struct {
	maxDepth int
	logger   *log.Logger
}

type Option func(*Engine)

func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLogger enables one log line per decision.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) MaxDepth() int { return e.maxDepth }

var defaultEngine = NewEngine()

// DetermineBestMove picks the computer's column at the default depth.
// It returns Full only when the board has no open column.
func DetermineBestMove(s *GameState) int {
	d, err := defaultEngine.Decide(context.Background(), s)
	if err != nil {
		return Full
	}
	return d.Column
}

// Decide searches s to the engine depth and chooses a column for s.Turn.
// s is restored before returning. ctx is checked between sibling moves.
func (e *Engine) Decide(ctx context.Context, s *GameState) (Decision, error) {
	legal := s.LegalColumns()
	if len(legal) == 0 {
		return Decision{Column: Full}, ErrBoardFull
	}
	start := time.Now()
	sr := &search{ctx: ctx, maxDepth: e.maxDepth, tally: make([]int, s.Board.Width)}
	col, score := sr.chooseBestMove(s, 0)
	if sr.err != nil {
		return Decision{Column: Full}, errors.Wrap(sr.err, "search aborted")
	}

	d := Decision{Column: col, Score: score, Tally: sr.tally, Nodes: sr.nodes}
	switch {
	case score == NeutralScore:
		d.Column, d.Fallback = mostWins(sr.tally, legal), true
	case col == Full:
		// every line scored below the neutral floor
		d.Column = legal[0]
	}
	d.Elapsed = time.Since(start)

	if e.logger != nil {
		e.logger.Printf("decision: col=%d score=%d fallback=%v nodes=%d took=%v",
			d.Column, d.Score, d.Fallback, d.Nodes, d.Elapsed)
	}
	return d, nil
}

func mostWins(tally []int, legal []int) int {
	best, most := legal[0], -1
	for _, col := range legal {
		if tally[col] > most {
			best, most = col, tally[col]
		}
	}
	return best
}

// search is the per-decision context; nothing in it outlives Decide.
type search struct {
	ctx      context.Context
	maxDepth int
	tally    []int
	nodes    int
	err      error
}

func (sr *search) evaluatePosition(s *GameState, depth int) int {
	if who, ok := s.FindWinner(); ok {
		if who == Computer {
			return WinScore
		}
		return LoseScore
	}
	if depth >= sr.maxDepth {
		return NeutralScore
	}
	_, score := sr.chooseBestMove(s, depth)
	return score
}

// chooseBestMove tries every open column for s.Turn in ascending order and
// keeps the first one reaching the highest raw score. The result is
// negated when the mover at this ply is the human.
func (sr *search) chooseBestMove(s *GameState, depth int) (int, int) {
	best, top := Full, NeutralScore-1
	for col := 0; col < s.Board.Width; col++ {
		row := s.DropTargets[col]
		if row == Full {
			continue
		}
		if sr.err != nil {
			break
		}
		if err := sr.ctx.Err(); err != nil {
			sr.err = err
			break
		}

		s.Apply(col)
		sr.nodes++
		score := sr.evaluatePosition(s, depth+1)
		// counted on every branch, chosen or not
		if score == WinScore {
			sr.tally[col]++
		}
		if score > top {
			best, top = col, score
		}
		s.Undo(col, row)
	}
	if s.Turn == Computer {
		return best, top
	}
	return best, -top
}
