package metrics

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"gomoku/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts search events", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)
		c.AddEpisode()
		c.AddEpisode()
		c.AddPlayout(true)
		c.AddPlayout(false)
		c.AddPlayout(false)
		c.AddNode()
		c.SetOutcome("win")

		got := c.Complete()
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 2, got.Episodes)
		require.Equal(t, 3, got.Playouts)
		require.Equal(t, 1, got.FullPlayouts)
		require.Equal(t, 1, got.Nodes)
		require.Equal(t, "win", got.Outcome)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2)
		c.AddEpisode()
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	games := []GameRecord{{
		ID: 1,
		GameMetric: GameMetric{
			Black: 1, White: 2, Winner: game.White,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second,
			TotalMoves: 9,
		},
	}}
	moves := []MoveRecord{{
		Game: 1,
		MoveMetric: MoveMetric{
			Step: 1, Player: game.Black, Move: "D4",
			SearchMetric: SearchMetric{Episodes: 3, Playouts: 150, Outcome: "unknown"},
		},
	}}
	configs := []AgentConfig{{ID: 1, Kind: MCTSAgent, Samples: 5, Playouts: 50, Policy: "rule"}}

	t.Run("writes one csv table per destination", func(t *testing.T) {
		var agentsOut, gamesOut, movesOut bytes.Buffer
		w := NewWriter(&agentsOut, &gamesOut, &movesOut)

		require.NoError(t, w.WriteAll(configs, games, moves))

		require.True(t, strings.HasPrefix(agentsOut.String(), "id,kind,duration"))
		require.Contains(t, agentsOut.String(), "1,mcts,0s,0s,5,50,0,rule,0")
		require.Contains(t, gamesOut.String(), "1,1,2,w,2024-01-02T03:04:05Z,2024-01-02T03:04:06Z,1s,9")
		require.Contains(t, movesOut.String(), "1,1,b,D4,0s,3,150,0,0,unknown")
	})

	t.Run("skips tables without destination", func(t *testing.T) {
		var gamesOut bytes.Buffer
		w := NewWriter(nil, &gamesOut, nil)

		require.NoError(t, w.WriteAll(configs, games, moves))
		require.Equal(t, 2, strings.Count(gamesOut.String(), "\n"))
	})

	t.Run("reports every failing table", func(t *testing.T) {
		w := NewWriter(failingWriter{}, failingWriter{}, &bytes.Buffer{})

		err := w.WriteAll(configs, games, moves)
		require.Error(t, err)
		require.Contains(t, err.Error(), "agent configs")
		require.Contains(t, err.Error(), "game records")
		require.NotContains(t, err.Error(), "move records")
	})
}

func TestSummarize(t *testing.T) {
	games := []GameRecord{
		{ID: 1, GameMetric: GameMetric{Black: 1, White: 2, Winner: game.Black, TotalMoves: 10}},
		{ID: 2, GameMetric: GameMetric{Black: 2, White: 1, Winner: game.Black, TotalMoves: 20}},
		{ID: 3, GameMetric: GameMetric{Black: 1, White: 2, Winner: game.Empty, TotalMoves: 30}},
	}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{SearchMetric: SearchMetric{Episodes: 2, Nodes: 10}}},
		{Game: 1, MoveMetric: MoveMetric{SearchMetric: SearchMetric{Episodes: 4, Nodes: 30}}},
	}

	got := Summarize(games, moves)

	require.Equal(t, 3, got.Games)
	require.Equal(t, map[int]int{1: 1, 2: 1}, got.Wins)
	require.Equal(t, 1, got.Draws)
	require.InDelta(t, 20.0, got.MeanMoves, 1e-9)
	require.InDelta(t, 10.0, got.StdMoves, 1e-9)
	require.InDelta(t, 3.0, got.MeanEpisodes, 1e-9)
	require.InDelta(t, 20.0, got.MeanNodes, 1e-9)

	t.Run("empty and single samples", func(t *testing.T) {
		empty := Summarize(nil, nil)
		require.Zero(t, empty.MeanMoves)
		require.Zero(t, empty.StdMoves)

		single := Summarize(games[:1], nil)
		require.InDelta(t, 10.0, single.MeanMoves, 1e-9)
		require.Zero(t, single.StdMoves)
	})
}
