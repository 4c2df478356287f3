package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Event is the union of every payload Emit sends.
type Event struct {
	Event     string    `json:"event"`
	TS        time.Time `json:"ts"`
	GameID    string    `json:"gameId"`
	Mode      string    `json:"mode"`
	By        string    `json:"by"`
	Winner    string    `json:"winner"`
	Reason    string    `json:"reason"`
	Score     int       `json:"score"`
	Fallback  bool      `json:"fallback"`
	Nodes     int       `json:"nodes"`
	ElapsedMs int64     `json:"elapsedMs"`
}

func DecodeEvent(b []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(b, &ev); err != nil {
		return ev, errors.Wrap(err, "decode event")
	}
	if ev.Event == "" {
		return ev, errors.New("event without type")
	}
	return ev, nil
}

type Metrics struct {
	mu sync.Mutex

	TotalGames   int
	TotalMoves   int
	GamesByMode  map[string]int
	GamesByHour  map[int]int
	ComputerWins int
	HumanWins    int
	Draws        int

	Decisions         int
	FallbackDecisions int
	Analyses          int
	TotalNodes        int64
	TotalThinking     time.Duration
	TotalDuration     time.Duration
	FinishedGames     int

	starts map[string]time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		GamesByMode: map[string]int{},
		GamesByHour: map[int]int{},
		starts:      map[string]time.Time{},
	}
}

func (m *Metrics) Apply(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev.Event {
	case "match.start":
		m.TotalGames++
		m.GamesByMode[ev.Mode]++
		m.GamesByHour[ev.TS.Hour()]++
		m.starts[ev.GameID] = ev.TS
	case "move":
		m.TotalMoves++
	case "decision", "analysis":
		if ev.Event == "analysis" {
			m.Analyses++
		} else {
			m.Decisions++
		}
		if ev.Fallback {
			m.FallbackDecisions++
		}
		m.TotalNodes += int64(ev.Nodes)
		m.TotalThinking += time.Duration(ev.ElapsedMs) * time.Millisecond
	case "game.end":
		if start, ok := m.starts[ev.GameID]; ok {
			m.TotalDuration += ev.TS.Sub(start)
			m.FinishedGames++
			delete(m.starts, ev.GameID)
		}
		switch ev.Winner {
		case "computer":
			m.ComputerWins++
		case "":
			m.Draws++
		default:
			m.HumanWins++
		}
	}
}

func (m *Metrics) AverageNodes() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.Decisions + m.Analyses
	if n == 0 {
		return 0
	}
	return float64(m.TotalNodes) / float64(n)
}

func (m *Metrics) AverageDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FinishedGames == 0 {
		return 0
	}
	return m.TotalDuration / time.Duration(m.FinishedGames)
}

// Print writes a snapshot in the consumer's log format.
func (m *Metrics) Print(w io.Writer) {
	avgNodes, avgDur := m.AverageNodes(), m.AverageDuration()
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintln(w, "=== GAME ANALYTICS ===")
	fmt.Fprintf(w, "Total Games: %d\n", m.TotalGames)
	fmt.Fprintf(w, "Total Moves: %d\n", m.TotalMoves)
	fmt.Fprintf(w, "Average Game Duration: %v\n", avgDur)
	fmt.Fprintf(w, "Computer Wins: %d, Human Wins: %d, Draws: %d\n", m.ComputerWins, m.HumanWins, m.Draws)
	fmt.Fprintf(w, "Decisions: %d (fallback %d), Analyses: %d, Avg Nodes: %.0f\n",
		m.Decisions, m.FallbackDecisions, m.Analyses, avgNodes)

	modes := make([]string, 0, len(m.GamesByMode))
	for mode := range m.GamesByMode {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	fmt.Fprintln(w, "Games by Mode:")
	for _, mode := range modes {
		fmt.Fprintf(w, "  %s - %d games\n", mode, m.GamesByMode[mode])
	}
	fmt.Fprintln(w, "=====================")
}
