package engine

const (
	DefaultWidth  = 7
	DefaultHeight = 6

	// LineLength is the number of aligned pieces that wins.
	LineLength = 4

	// Full marks a column whose drop target has been used up.
	Full = -1
)

// a line cannot exist before the first player has placed LineLength pieces
const minWinMoves = 2*LineLength - 1

type Player int8

const (
	Human    Player = 1
	Computer Player = 2
)

// Opponent returns the other player.
func Opponent(p Player) Player {
	if p == Human {
		return Computer
	}
	return Human
}

func (p Player) String() string {
	switch p {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return "none"
}

type Cell int8

const (
	Forbidden Cell = -1
	Empty     Cell = 0
)

// Occupied returns the cell value holding a piece of p.
func Occupied(p Player) Cell { return Cell(p) }

// Player reports the owner of an occupied cell.
func (c Cell) Player() (Player, bool) {
	if c == Cell(Human) || c == Cell(Computer) {
		return Player(c), true
	}
	return 0, false
}

// Board is a Width x Height grid stored row-major, row 0 at the top.
type Board struct {
	Width  int
	Height int
	cells  []Cell
}

func newBoard(width, height int) Board {
	return Board{Width: width, Height: height, cells: make([]Cell, width*height)}
}

func (b Board) index(col, row int) int { return row*b.Width + col }

func (b Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.Width && row >= 0 && row < b.Height
}

func (b Board) At(col, row int) Cell { return b.cells[b.index(col, row)] }

func (b *Board) set(col, row int, c Cell) { b.cells[b.index(col, row)] = c }

func (b Board) clone() Board {
	nb := Board{Width: b.Width, Height: b.Height, cells: make([]Cell, len(b.cells))}
	copy(nb.cells, b.cells)
	return nb
}

// GameState is owned by a single driver; the search mutates it with
// apply/undo pairs and always hands it back unchanged.
type GameState struct {
	Board       Board
	DropTargets []int
	Turn        Player
	MovesPlayed int
}
