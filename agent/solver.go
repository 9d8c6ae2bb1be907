package agent

import (
	"context"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/solver"

	"github.com/rs/zerolog/log"
)

type solverAgent struct {
	solver   *solver.Solver
	fallback Agent
}

// NewSolverAgent returns an agent that first tries to prove the position. A proven win
// or draw is played directly; otherwise the move comes from fallback.
func NewSolverAgent(s *solver.Solver, fallback Agent) Agent {
	if s == nil || fallback == nil {
		panic("solver agent needs a solver and a fallback agent")
	}
	return solverAgent{solver: s, fallback: fallback}
}

func (a solverAgent) FindMove(ctx context.Context, b *game.Board, color game.Color) (game.Point, metrics.SearchMetric) {
	if over, _ := b.CheckTerminal(); over || len(b.LegalMoves()) == 0 {
		return game.Pass, metrics.SearchMetric{}
	}

	outcome, move, err := a.solver.Solve(ctx, b, color)
	if err != nil {
		log.Warn().Err(err).Msg("solver failed, using fallback agent")
	}
	solved := a.solver.Metrics()
	if err == nil && (outcome == solver.Win || outcome == solver.Draw) && move != game.Pass {
		return move, solved
	}

	move, metric := a.fallback.FindMove(ctx, b, color)
	metric.Nodes += solved.Nodes
	metric.Duration += solved.Duration
	metric.Outcome = outcome.String()
	return move, metric
}
