package experiments

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"

	"github.com/stretchr/testify/require"
)

func randomConfig(id int, seed uint64) metrics.AgentConfig {
	return metrics.AgentConfig{ID: id, Kind: metrics.RandomAgent, Seed: seed}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("alternates colors and summarises", func(t *testing.T) {
		x := Experiment{
			Name:     "random",
			Size:     5,
			Games:    3,
			MatchUps: []MatchUp{{randomConfig(1, 10), randomConfig(2, 20)}},
		}

		report, err := Run(ctx, x)

		require.NoError(t, err)
		require.Len(t, report.Games, 3)
		require.Equal(t, []int{1, 2, 1}, []int{report.Games[0].Black, report.Games[1].Black, report.Games[2].Black})
		require.Equal(t, []int{2, 1, 2}, []int{report.Games[0].White, report.Games[1].White, report.Games[2].White})

		total := 0
		for _, g := range report.Games {
			total += g.TotalMoves
		}
		require.Len(t, report.Moves, total)
		require.Equal(t, 3, report.Summary.Games)
		require.Equal(t, 3, report.Summary.Wins[1]+report.Summary.Wins[2]+report.Summary.Draws)
		require.Len(t, report.Configs, 2)
	})

	t.Run("writes the report as csv", func(t *testing.T) {
		x := Experiment{
			Name:     "random",
			Size:     4,
			Games:    1,
			MatchUps: []MatchUp{{randomConfig(1, 1), randomConfig(2, 2)}},
		}
		report, err := Run(ctx, x)
		require.NoError(t, err)

		var agents, games bytes.Buffer
		require.NoError(t, report.Write(metrics.NewWriter(&agents, &games, nil)))

		require.Equal(t, 3, strings.Count(agents.String(), "\n"))
		require.Contains(t, games.String(), ",1,2,e,") // 4x4 boards are always drawn
	})

	t.Run("plays mcts agents", func(t *testing.T) {
		mcts := metrics.AgentConfig{ID: 1, Kind: metrics.MCTSAgent, Duration: 20 * time.Millisecond, Playouts: 1, Samples: 2, Seed: 5}
		x := Experiment{Name: "mcts", Size: 5, Games: 1, MatchUps: []MatchUp{{mcts, randomConfig(2, 6)}}}

		report, err := Run(ctx, x)

		require.NoError(t, err)
		require.Equal(t, game.Black.String(), report.Moves[0].Player.String())
		require.Positive(t, report.Moves[0].Episodes)
	})

	t.Run("rejects empty experiments", func(t *testing.T) {
		_, err := Run(ctx, Experiment{Name: "none", Size: 5, Games: 0, MatchUps: []MatchUp{{randomConfig(1, 1), randomConfig(2, 2)}}})
		require.ErrorIs(t, err, ErrNoGames)

		_, err = Run(ctx, Experiment{Name: "none", Size: 5, Games: 1})
		require.ErrorIs(t, err, ErrNoMatchUps)
	})

	t.Run("reports invalid agents and boards", func(t *testing.T) {
		_, err := Run(ctx, Experiment{Name: "bad", Size: 5, Games: 1, MatchUps: []MatchUp{{{ID: 1, Kind: "human"}, randomConfig(2, 2)}}})
		require.ErrorIs(t, err, ErrUnknownAgent)

		policy := metrics.AgentConfig{ID: 1, Kind: metrics.MCTSAgent, Policy: "greedy"}
		_, err = Run(ctx, Experiment{Name: "bad", Size: 5, Games: 1, MatchUps: []MatchUp{{policy, randomConfig(2, 2)}}})
		require.ErrorIs(t, err, searcher.ErrUnknownPolicy)

		_, err = Run(ctx, Experiment{Name: "bad", Size: 30, Games: 1, MatchUps: []MatchUp{{randomConfig(1, 1), randomConfig(2, 2)}}})
		require.ErrorIs(t, err, game.ErrInvalidSize)
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		report, err := Run(cctx, Experiment{Name: "cancelled", Size: 5, Games: 2, MatchUps: []MatchUp{{randomConfig(1, 1), randomConfig(2, 2)}}})

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, report.Games)
	})
}

func TestCatalog(t *testing.T) {
	settings := Settings{Size: 9, Games: 2, Base: metrics.AgentConfig{Duration: time.Second, Samples: 5, Playouts: 50}}

	require.Equal(t, []string{"baseline", "cutoff", "parallelization", "policy", "solver"}, Names())

	t.Run("parallelization pairs the sequential agent with each variant", func(t *testing.T) {
		x, err := Named("parallelization", settings)
		require.NoError(t, err)

		require.Len(t, x.MatchUps, 3)
		require.Len(t, x.Configs(), 4)
		for _, matchUp := range x.MatchUps {
			require.Equal(t, 1, matchUp[0].Goroutines)
			require.Greater(t, matchUp[1].Goroutines, 1)
			require.Equal(t, time.Second, matchUp[1].Duration)
		}
	})

	t.Run("policy compares playout policies", func(t *testing.T) {
		x, err := Named("policy", settings)
		require.NoError(t, err)

		require.Equal(t, "random", x.MatchUps[0][0].Policy)
		require.Equal(t, "rule", x.MatchUps[0][1].Policy)
		require.Equal(t, 9, x.Size)
		require.Equal(t, 2, x.Games)
	})

	t.Run("solver plays the solver agent", func(t *testing.T) {
		x, err := Named("solver", settings)
		require.NoError(t, err)
		require.Equal(t, metrics.SolverAgent, x.MatchUps[0][0].Kind)
	})

	t.Run("unknown names are rejected", func(t *testing.T) {
		_, err := Named("speedup", settings)
		require.ErrorIs(t, err, ErrUnknownExperiment)
	})
}
