package engine

import "github.com/pkg/errors"

// directions in scan order: N, NE, E, SE, S, SW, W, NW as (dcol, drow)
var directions = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// New returns a fresh game on a width x height board. Only the bottom row
// is open; everything above it is forbidden until the column grows.
func New(width, height int, first Player) *GameState {
	s := &GameState{
		Board:       newBoard(width, height),
		DropTargets: make([]int, width),
		Turn:        first,
	}
	for row := 0; row < height-1; row++ {
		for col := 0; col < width; col++ {
			s.Board.set(col, row, Forbidden)
		}
	}
	for col := 0; col < width; col++ {
		s.Board.set(col, height-1, Empty)
		s.DropTargets[col] = height - 1
	}
	return s
}

// NewGame is the standard 7x6 board with the computer moving first.
func NewGame() *GameState { return New(DefaultWidth, DefaultHeight, Computer) }

// Apply drops a piece for s.Turn into col and returns its row.
// col must be in range and not full; this is not checked.
func (s *GameState) Apply(col int) int {
	row := s.DropTargets[col]
	s.Board.set(col, row, Occupied(s.Turn))
	if row > 0 {
		s.Board.set(col, row-1, Empty)
		s.DropTargets[col] = row - 1
	} else {
		s.DropTargets[col] = Full
	}
	s.Turn = Opponent(s.Turn)
	s.MovesPlayed++
	return row
}

// Undo retracts the piece at (col, row). It must be the last piece applied
// in that column.
func (s *GameState) Undo(col, row int) {
	s.Board.set(col, row, Empty)
	if row > 0 {
		s.Board.set(col, row-1, Forbidden)
	}
	s.DropTargets[col] = row
	s.Turn = Opponent(s.Turn)
	s.MovesPlayed--
}

// TryApply is Apply for untrusted input.
func (s *GameState) TryApply(col int) (int, error) {
	if col < 0 || col >= s.Board.Width {
		return Full, errors.Wrapf(ErrColOutOfRange, "column %d", col)
	}
	if s.DropTargets[col] == Full {
		return Full, errors.Wrapf(ErrColFull, "column %d", col)
	}
	return s.Apply(col), nil
}

// IsLegalDrop reports whether (col, row) is where a piece dropped in col
// would land right now.
func (s *GameState) IsLegalDrop(col, row int) bool {
	if col < 0 || col >= s.Board.Width || row == Full {
		return false
	}
	return s.DropTargets[col] == row
}

// LandingRow returns the drop target of col.
func (s *GameState) LandingRow(col int) (int, bool) {
	if col < 0 || col >= s.Board.Width || s.DropTargets[col] == Full {
		return Full, false
	}
	return s.DropTargets[col], true
}

func (s *GameState) LegalColumns() []int {
	out := make([]int, 0, s.Board.Width)
	for col, row := range s.DropTargets {
		if row != Full {
			out = append(out, col)
		}
	}
	return out
}

func (s *GameState) IsFull() bool {
	for _, row := range s.DropTargets {
		if row != Full {
			return false
		}
	}
	return true
}

func (s *GameState) Clone() *GameState {
	c := *s
	c.Board = s.Board.clone()
	c.DropTargets = append([]int(nil), s.DropTargets...)
	return &c
}

// Equal compares every cell, drop target, the turn and the move counter.
func (s *GameState) Equal(o *GameState) bool {
	if s.Turn != o.Turn || s.MovesPlayed != o.MovesPlayed ||
		s.Board.Width != o.Board.Width || s.Board.Height != o.Board.Height {
		return false
	}
	for i := range s.Board.cells {
		if s.Board.cells[i] != o.Board.cells[i] {
			return false
		}
	}
	for i := range s.DropTargets {
		if s.DropTargets[i] != o.DropTargets[i] {
			return false
		}
	}
	return true
}

// FindWinner returns the owner of the first four-in-a-row found.
func (s *GameState) FindWinner() (Player, bool) {
	if s.MovesPlayed < minWinMoves {
		return 0, false
	}
	b := &s.Board
	for col := 0; col < b.Width; col++ {
		for row := b.Height - 1; row >= 0; row-- {
			who, ok := b.At(col, row).Player()
			if !ok {
				// nothing above an open or forbidden cell can be occupied
				break
			}
			for _, d := range directions {
				if b.lineFrom(col, row, d, Occupied(who)) {
					return who, true
				}
			}
		}
	}
	return 0, false
}

func (b *Board) lineFrom(col, row int, d [2]int, want Cell) bool {
	for step := 1; step < LineLength; step++ {
		c, r := col+step*d[0], row+step*d[1]
		if !b.InBounds(c, r) || b.At(c, r) != want {
			return false
		}
	}
	return true
}
