package game

import "github.com/pkg/errors"

// MaxSize is bounded by the column letters available to the notation (A-Z without I).
const MaxSize = 25

const MinSize = 2

// Color is the content of a single grid cell. Black and White double as player colors.
type Color int

const (
	Empty Color = iota
	Black
	White
	Border
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

// IsPlayer reports whether c is a color that can move.
func (c Color) IsPlayer() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	case Empty:
		return "e"
	}
	return "border"
}

// Point is an index into the padded grid. Index 0 is always a border cell, so the zero
// value doubles as the pass move.
type Point int

const Pass Point = 0

// Signature is an exact encoding of the grid contents, suitable as a map key.
type Signature string

type Status int

const (
	Ongoing Status = iota
	Won
	Drawn
)

// Result describes whether the game on a board is over and who won it.
type Result struct {
	Status Status
	Winner Color // Empty unless Status is Won
}

var (
	ErrInvalidSize   = errors.New("board size out of range")
	ErrInvalidVertex = errors.New("invalid vertex")
)
