package searcher

import (
	"strings"

	"gomoku/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

var ErrUnknownPolicy = errors.New("unknown playout policy")

// Policy chooses the moves of both sides during playouts.
type Policy int

const (
	RandomPolicy Policy = iota
	RulePolicy
)

func (p Policy) String() string {
	if p == RulePolicy {
		return "rule"
	}
	return "random"
}

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "random", "":
		return RandomPolicy, nil
	case "rule":
		return RulePolicy, nil
	}
	return RandomPolicy, errors.Wrapf(ErrUnknownPolicy, "%q", name)
}

// RuleMoves returns the most urgent tactical moves for color, in order of priority:
// completing five, blocking the opponent's five, making an open four, blocking the
// opponent's open four. It returns nil when no rule applies.
func RuleMoves(b *game.Board, color game.Color) []game.Point {
	if moves := b.WinningMoves(color); len(moves) > 0 {
		return moves
	}
	if moves := b.WinningMoves(color.Opponent()); len(moves) > 0 {
		return moves
	}
	if moves := b.OpenFour(color); len(moves) > 0 {
		return moves
	}
	return b.BlockOpenFour(color)
}

// choose returns the next playout move for color, or Pass on a full board.
func (p Policy) choose(b *game.Board, color game.Color, rng *rand.Rand) game.Point {
	if p == RulePolicy {
		if moves := RuleMoves(b, color); len(moves) > 0 {
			return moves[rng.Intn(len(moves))]
		}
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Pass
	}
	return moves[rng.Intn(len(moves))]
}
