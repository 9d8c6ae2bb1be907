package engine

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
)

const MaxMoves = meta.MAX_MOVES

type Engine interface {
	// Run plays a game till there's a five, the board is full or a max number of moves is reached.
	// The winner is Empty for a draw.
	Run(ctx context.Context) (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
