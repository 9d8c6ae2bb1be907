package searcher

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"

	"golang.org/x/exp/rand"
)

// rollout plays b out from last, the move just made, with color to move. It returns
// the winner, Empty for a draw, and whether the game ended before the cutoff. b is
// consumed.
func rollout(b *game.Board, last game.Point, color game.Color, cutoff int, policy Policy, rng *rand.Rand) (game.Color, bool) {
	if b.FiveAt(last) {
		return b.Color(last), true
	}
	for depth := 0; depth < cutoff; depth++ {
		move := policy.choose(b, color, rng)
		if move == game.Pass {
			return game.Empty, true
		}
		b.Play(move, color)
		if b.FiveAt(move) {
			return color, true
		}
		color = color.Opponent()
	}
	// Cutoff reached
	return game.Empty, false
}

func reward(winner, color game.Color) float64 {
	switch winner {
	case color:
		return WIN
	case game.Empty:
		return DRAW
	}
	return LOSS
}

// evaluation is the playout tally of one candidate move.
type evaluation struct {
	move      game.Point
	signature game.Signature
	wins      float64
	playouts  int
}

func (e evaluation) ratio() float64 {
	return e.wins / float64(e.playouts)
}

// evaluate plays move for toMove on a copy of pos and runs up to n playouts from it,
// stopping early when ctx is done. Wins are counted for color.
func evaluate(ctx context.Context, pos *game.Board, move game.Point, toMove, color game.Color,
	n, cutoff int, policy Policy, rng *rand.Rand, collector metrics.Collector) evaluation {
	start := pos.Copy()
	start.Play(move, toMove)
	e := evaluation{move: move, signature: start.Signature()}
	for i := 0; i < n && ctx.Err() == nil; i++ {
		winner, full := rollout(start.Copy(), move, toMove.Opponent(), cutoff, policy, rng)
		collector.AddPlayout(full)
		e.wins += reward(winner, color)
		e.playouts++
	}
	return e
}
