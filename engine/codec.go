package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	glyphOpen     = '.'
	glyphHuman    = '1'
	glyphComputer = '2'
)

// ParseBoard builds a state from rows listed top to bottom, using '.' for
// no piece, '1' for the human and '2' for the computer. Pieces must rest on
// the bottom or on another piece.
func ParseBoard(rows []string, turn Player) (*GameState, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrBadBoard, "no rows")
	}
	if turn != Human && turn != Computer {
		return nil, errors.Wrapf(ErrBadBoard, "turn %d", turn)
	}
	width, height := len(rows[0]), len(rows)
	for r, line := range rows {
		if len(line) != width {
			return nil, errors.Wrapf(ErrBadBoard, "row %d has %d cells, want %d", r, len(line), width)
		}
	}

	s := New(width, height, turn)
	for col := 0; col < width; col++ {
		top := height
		for row := height - 1; row >= 0; row-- {
			switch rows[row][col] {
			case glyphOpen:
			case glyphHuman, glyphComputer:
				if top != row+1 {
					return nil, errors.Wrapf(ErrBadBoard, "floating piece at column %d row %d", col, row)
				}
				top = row
				s.Board.set(col, row, Cell(rows[row][col]-'0'))
				s.MovesPlayed++
			default:
				return nil, errors.Wrapf(ErrBadBoard, "unknown glyph %q at column %d row %d", rows[row][col], col, row)
			}
		}
		if top == 0 {
			s.DropTargets[col] = Full
			continue
		}
		s.Board.set(col, top-1, Empty)
		s.DropTargets[col] = top - 1
	}
	return s, nil
}

// Rows renders the board in the ParseBoard format.
func (s *GameState) Rows() []string {
	out := make([]string, s.Board.Height)
	var sb strings.Builder
	for row := 0; row < s.Board.Height; row++ {
		sb.Reset()
		for col := 0; col < s.Board.Width; col++ {
			switch s.Board.At(col, row) {
			case Occupied(Human):
				sb.WriteByte(glyphHuman)
			case Occupied(Computer):
				sb.WriteByte(glyphComputer)
			default:
				sb.WriteByte(glyphOpen)
			}
		}
		out[row] = sb.String()
	}
	return out
}

// String draws the board with column numbers underneath.
func (s *GameState) String() string {
	var sb strings.Builder
	for _, line := range s.Rows() {
		sb.WriteString("|")
		for _, c := range line {
			sb.WriteByte(' ')
			sb.WriteRune(c)
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(" ")
	for col := 0; col < s.Board.Width; col++ {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(col % 10))
	}
	sb.WriteString("\n")
	return sb.String()
}
