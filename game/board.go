package game

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Board is a Gomoku board stored as a one-dimensional grid padded with border cells,
// so that walking along any axis stops at a border without bounds checks.
//
// A Board is not safe for concurrent use. Searches mutate it in place and undo their
// moves in reverse order.
type Board struct {
	size    int
	ns      int // Row stride
	cells   []Color
	current Color
	stones  int
	topo    *topology
}

// NewBoard returns an empty board of the given size with Black to move.
func NewBoard(size int) (*Board, error) {
	b := &Board{}
	if err := b.Reset(size); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset clears the board and resizes it. The board is left unchanged on error.
func (b *Board) Reset(size int) error {
	if size < MinSize || size > MaxSize {
		return errors.Wrapf(ErrInvalidSize, "size %d not in [%d, %d]", size, MinSize, MaxSize)
	}
	topo := topologyFor(size)
	cells := make([]Color, topo.length)
	for i := range cells {
		cells[i] = Border
	}
	for _, p := range topo.points {
		cells[p] = Empty
	}

	b.size = size
	b.ns = size + 1
	b.cells = cells
	b.current = Black
	b.stones = 0
	b.topo = topo
	return nil
}

func (b *Board) Copy() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:    b.size,
		ns:      b.ns,
		cells:   cells,
		current: b.current,
		stones:  b.stones,
		topo:    b.topo, // Immutable
	}
}

func (b *Board) Size() int { return b.size }

// Current returns the color to move.
func (b *Board) Current() Color { return b.current }

func (b *Board) SetCurrent(color Color) {
	if color.IsPlayer() {
		b.current = color
	}
}

// Stones returns the number of stones on the board.
func (b *Board) Stones() int { return b.stones }

// Color returns the content of the cell at p, or Border for points outside the grid.
func (b *Board) Color(p Point) Color {
	if p < 0 || int(p) >= len(b.cells) {
		return Border
	}
	return b.cells[p]
}

// Point converts 1-indexed coordinates to a point, or Pass when they are off the board.
func (b *Board) Point(row, col int) Point {
	if row < 1 || row > b.size || col < 1 || col > b.size {
		return Pass
	}
	return Point(row*b.ns + col)
}

// Coord converts a point to 1-indexed coordinates.
func (b *Board) Coord(p Point) (row, col int) {
	return int(p) / b.ns, int(p) % b.ns
}

// Neighbors returns the on-board points adjacent to p, diagonals included.
func (b *Board) Neighbors(p Point) []Point {
	if p < 0 || int(p) >= len(b.topo.neighbors) {
		return nil
	}
	return b.topo.neighbors[p]
}

// Play places a stone of color on p and passes the turn. It returns false, leaving the
// board untouched, when p is not an empty cell or color is not a player.
func (b *Board) Play(p Point, color Color) bool {
	if p == Pass || !color.IsPlayer() || b.Color(p) != Empty {
		return false
	}
	b.cells[p] = color
	b.stones++
	b.current = color.Opponent()
	return true
}

// Undo removes the stone at p. The caller restores the player to move.
func (b *Board) Undo(p Point) {
	if !b.Color(p).IsPlayer() {
		return
	}
	b.cells[p] = Empty
	b.stones--
}

// Try plays p and returns a function that undoes the move and restores the player to
// move. The returned function should be deferred so it runs on every exit path.
func (b *Board) Try(p Point, color Color) (undo func(), ok bool) {
	previous := b.current
	if !b.Play(p, color) {
		return func() {}, false
	}
	return func() {
		b.Undo(p)
		b.current = previous
	}, true
}

// LegalMoves returns all empty points in ascending order.
func (b *Board) LegalMoves() []Point {
	moves := make([]Point, 0, len(b.topo.points)-b.stones)
	for _, p := range b.topo.points {
		if b.cells[p] == Empty {
			moves = append(moves, p)
		}
	}
	return moves
}

// CheckTerminal reports whether some stone is part of five in a row, and its color.
func (b *Board) CheckTerminal() (bool, Color) {
	for _, p := range b.topo.points {
		if b.cells[p].IsPlayer() && b.FiveAt(p) {
			return true, b.cells[p]
		}
	}
	return false, Empty
}

// FiveAt reports whether the stone at p is part of five in a row.
func (b *Board) FiveAt(p Point) bool {
	color := b.Color(p)
	if !color.IsPlayer() {
		return false
	}
	for _, step := range b.axes() {
		if count, _ := b.line(p, step, color); count+1 >= 5 {
			return true
		}
	}
	return false
}

func (b *Board) Result() Result {
	if over, winner := b.CheckTerminal(); over {
		return Result{Status: Won, Winner: winner}
	}
	if b.stones == len(b.topo.points) {
		return Result{Status: Drawn}
	}
	return Result{Status: Ongoing}
}

// Signature encodes the on-board cells, one byte per cell.
func (b *Board) Signature() Signature {
	var sb strings.Builder
	sb.Grow(len(b.topo.points))
	for _, p := range b.topo.points {
		sb.WriteByte(byte('0' + b.cells[p]))
	}
	return Signature(sb.String())
}

func (b *Board) Hash() uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(b.Signature()))
	return hasher.Sum64()
}

// String renders the board with the highest row on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 1; col <= b.size; col++ {
		sb.WriteByte(columnLetters[col-1])
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	for row := b.size; row >= 1; row-- {
		label := strconv.Itoa(row)
		if row < 10 {
			label = " " + label
		}
		sb.WriteString(label)
		sb.WriteByte(' ')
		for col := 1; col <= b.size; col++ {
			switch b.cells[b.Point(row, col)] {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
