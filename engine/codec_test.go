package engine

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseBoardDerivesDropTargets(t *testing.T) {
	s := mustParse(t, []string{
		"2...",
		"1...",
		"21..",
		"12.1",
	}, Human)
	if s.MovesPlayed != 7 {
		t.Fatalf("expected 7 moves, got %d", s.MovesPlayed)
	}
	want := []int{Full, 1, 3, 2}
	if !equalInts(s.DropTargets, want) {
		t.Fatalf("expected drop targets %v, got %v", want, s.DropTargets)
	}
	if s.Board.At(1, 1) != Empty || s.Board.At(1, 0) != Forbidden {
		t.Fatalf("column 1 should be open at row 1 and forbidden above")
	}
	if s.Board.At(2, 3) != Empty || s.Board.At(2, 2) != Forbidden {
		t.Fatalf("column 2 should be open at the bottom only")
	}
	if !s.IsLegalDrop(3, 2) || s.IsLegalDrop(3, 1) {
		t.Fatalf("column 3 lands on row 2")
	}
}

func TestParseBoardMatchesAppliedMoves(t *testing.T) {
	played := NewGame()
	for _, col := range []int{3, 3, 2, 4, 2} {
		played.Apply(col)
	}
	parsed := mustParse(t, played.Rows(), played.Turn)
	if !parsed.Equal(played) {
		t.Fatalf("parsed board differs from played board:\n%s\n%s", parsed, played)
	}
}

func TestParseBoardRejects(t *testing.T) {
	cases := map[string][]string{
		"empty":    {},
		"ragged":   {"...", ".."},
		"glyph":    {"...", ".x."},
		"floating": {".1.", "..."},
	}
	for name, rows := range cases {
		if _, err := ParseBoard(rows, Human); !errors.Is(err, ErrBadBoard) {
			t.Errorf("%s: expected ErrBadBoard, got %v", name, err)
		}
	}
	if _, err := ParseBoard([]string{"..."}, 0); !errors.Is(err, ErrBadBoard) {
		t.Errorf("expected ErrBadBoard for a missing turn, got %v", err)
	}
}

func TestStringShowsColumnNumbers(t *testing.T) {
	s := New(3, 2, Computer)
	s.Apply(1)
	out := s.String()
	want := "| . . . |\n| . 2 . |\n  0 1 2\n"
	if out != want {
		t.Fatalf("unexpected rendering:\n%q\nwant\n%q", out, want)
	}
}
