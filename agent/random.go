package agent

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random empty point.
// It is not safe for concurrent use.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, b *game.Board, _ game.Color) (game.Point, metrics.SearchMetric) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Pass, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
