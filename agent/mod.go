package agent

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Agent interface {
	// FindMove returns a move for color and performance metrics (if collected) from the search.
	// The board may be searched in place but is restored before FindMove returns.
	FindMove(ctx context.Context, b *game.Board, color game.Color) (game.Point, metrics.SearchMetric)
}
