package agent

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

type searchAgent struct {
	mcts *searcher.MCTS
}

// NewSearchAgent returns an agent that plays the best move found by Monte Carlo tree search.
func NewSearchAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) FindMove(ctx context.Context, b *game.Board, color game.Color) (game.Point, metrics.SearchMetric) {
	return a.mcts.Search(ctx, b, color)
}
