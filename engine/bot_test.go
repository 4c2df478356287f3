package engine

import (
	"bytes"
	"context"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// computer holds the bottom row from column 2 to 4 with both ends open
var threeOpen = []string{
	"......",
	"......",
	"......",
	"..11..",
	"1.222.",
}

// human threatens to complete the bottom row in column 4
var humanThreat = []string{
	"......",
	"......",
	"......",
	".22...",
	"2111..",
}

func decide(t *testing.T, s *GameState, depth int) Decision {
	t.Helper()
	d, err := NewEngine(WithMaxDepth(depth)).Decide(context.Background(), s)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	return d
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDetermineBestMoveCompletesFour(t *testing.T) {
	s := mustParse(t, threeOpen, Computer)
	if col := DetermineBestMove(s); col != 1 {
		t.Fatalf("expected winning column 1, got %d", col)
	}
}

func TestDecideWinningLineScoresWin(t *testing.T) {
	s := mustParse(t, threeOpen, Computer)
	d := decide(t, s, 4)
	if d.Column != 1 || d.Score != WinScore || d.Fallback {
		t.Fatalf("expected column 1 with a winning score, got %+v", d)
	}
	if want := []int{28, 29, 28, 28, 28, 29}; !equalInts(d.Tally, want) {
		t.Fatalf("expected tally %v, got %v", want, d.Tally)
	}
}

func TestDetermineBestMoveBlocksHuman(t *testing.T) {
	s := mustParse(t, humanThreat, Computer)
	if col := DetermineBestMove(s); col != 4 {
		t.Fatalf("expected block in column 4, got %d", col)
	}
}

func TestShallowSearchBlocksHuman(t *testing.T) {
	s := mustParse(t, humanThreat, Computer)
	d := decide(t, s, 2)
	if d.Column != 4 || d.Score != WinScore || d.Fallback {
		t.Fatalf("expected decided block in column 4, got %+v", d)
	}
	if want := []int{0, 0, 0, 0, 1, 0}; !equalInts(d.Tally, want) {
		t.Fatalf("expected tally %v, got %v", want, d.Tally)
	}
}

func TestFallbackPicksMostWins(t *testing.T) {
	s := mustParse(t, humanThreat, Computer)
	d := decide(t, s, 4)
	if d.Score != NeutralScore || !d.Fallback {
		t.Fatalf("expected a neutral search with fallback, got %+v", d)
	}
	if want := []int{16, 12, 12, 16, 32, 12}; !equalInts(d.Tally, want) {
		t.Fatalf("expected tally %v, got %v", want, d.Tally)
	}
	if d.Column != 4 {
		t.Fatalf("expected column with most wins (4), got %d", d.Column)
	}
}

func TestFallbackTieGoesToLowestColumn(t *testing.T) {
	s := New(4, 4, Computer)
	d := decide(t, s, 8)
	if !d.Fallback || d.Score != NeutralScore {
		t.Fatalf("expected fallback decision, got %+v", d)
	}
	if want := []int{4832, 4832, 4832, 4832}; !equalInts(d.Tally, want) {
		t.Fatalf("expected tally %v, got %v", want, d.Tally)
	}
	if d.Column != 0 {
		t.Fatalf("expected lowest column on tally tie, got %d", d.Column)
	}
}

func TestFallbackWithoutWinsTakesFirstOpenColumn(t *testing.T) {
	s := mustParse(t, []string{
		"1.....",
		"2.....",
		"1.....",
		"2.....",
		"1.....",
	}, Computer)
	d := decide(t, s, 1)
	if !d.Fallback || d.Column != 1 {
		t.Fatalf("expected fallback to column 1 (column 0 is full), got %+v", d)
	}
}

func TestEqualScoresGoToLowestColumn(t *testing.T) {
	for run := 0; run < 5; run++ {
		s := New(4, 4, Computer)
		d := decide(t, s, 2)
		if d.Column != 0 || d.Score != WinScore || d.Fallback {
			t.Fatalf("run %d: expected column 0 with a win score, got %+v", run, d)
		}
		if want := []int{1, 1, 1, 1}; !equalInts(d.Tally, want) {
			t.Fatalf("run %d: expected tally %v, got %v", run, want, d.Tally)
		}
	}

	// both ends complete the row; the lower one is played
	s := mustParse(t, []string{"......", "......", ".11...", ".222.1"}, Computer)
	if d := decide(t, s, 3); d.Column != 0 {
		t.Fatalf("expected column 0 of two winning ends, got %d", d.Column)
	}
}

func TestDecideBelowNeutralFloorPlaysFirstOpenColumn(t *testing.T) {
	// a single row never yields a line: every branch ends on a full board
	s := New(4, 1, Computer)
	d := decide(t, s, 8)
	if d.Score != NeutralScore-1 || d.Fallback {
		t.Fatalf("expected score %d without fallback, got %+v", NeutralScore-1, d)
	}
	if d.Column != 0 {
		t.Fatalf("expected first open column, got %d", d.Column)
	}
}

func TestDecideRestoresState(t *testing.T) {
	s := mustParse(t, humanThreat, Computer)
	before := s.Clone()
	decide(t, s, 5)
	if !s.Equal(before) {
		t.Fatalf("search must leave the state as it found it")
	}
}

func TestDecideTallyIsPerDecision(t *testing.T) {
	e := NewEngine(WithMaxDepth(4))
	s := mustParse(t, humanThreat, Computer)
	first, err := e.Decide(context.Background(), s)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	second, err := e.Decide(context.Background(), s)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if !equalInts(first.Tally, second.Tally) || first.Column != second.Column {
		t.Fatalf("decisions differ: %+v vs %+v", first, second)
	}
}

func TestDecideOnFullBoard(t *testing.T) {
	s := mustParse(t, []string{"12", "21"}, Computer)
	if _, err := NewEngine().Decide(context.Background(), s); !errors.Is(err, ErrBoardFull) {
		t.Fatalf("expected ErrBoardFull, got %v", err)
	}
	if col := DetermineBestMove(s); col != Full {
		t.Fatalf("expected Full, got %d", col)
	}
}

func TestDecideHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewGame()
	before := s.Clone()
	_, err := NewEngine().Decide(ctx, s)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !s.Equal(before) {
		t.Fatalf("aborted search must restore the state")
	}
}

func TestDecideLogsDecision(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithMaxDepth(2), WithLogger(log.New(&buf, "", 0)))
	if _, err := e.Decide(context.Background(), New(4, 4, Computer)); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if !strings.Contains(buf.String(), "decision: col=0") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestRandomLegalColumnSkipsFullColumns(t *testing.T) {
	s := mustParse(t, []string{"1.2", "2.1"}, Human)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if col := RandomLegalColumn(s, rng); col != 1 {
			t.Fatalf("only column 1 is open, got %d", col)
		}
	}

	seen := map[int]bool{}
	open := NewGame()
	for i := 0; i < 500; i++ {
		seen[RandomLegalColumn(open, rng)] = true
	}
	if len(seen) != DefaultWidth {
		t.Fatalf("expected every column to be drawn, saw %v", seen)
	}

	full := mustParse(t, []string{"12", "21"}, Human)
	if col := RandomLegalColumn(full, rng); col != Full {
		t.Fatalf("expected Full on a full board, got %d", col)
	}
}
