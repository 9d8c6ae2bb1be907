package searcher

import (
	"bytes"
	"context"
	"testing"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/utils"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, time.Second, m.Duration())
		require.Equal(t, RandomPolicy, m.Policy())
		require.Equal(t, 5, m.samples)
		require.Equal(t, 50, m.playouts)
		require.Equal(t, MaxCutoff, m.cutoff)
		require.Equal(t, 1, m.goroutines)
	})

	t.Run("ignores invalid options", func(t *testing.T) {
		m := NewMCTS(WithSamples(0), WithPlayouts(-1), WithCutoff(0), WithGoroutines(0), WithDuration(-time.Second))

		require.Equal(t, time.Second, m.Duration())
		require.Equal(t, 5, m.samples)
		require.Equal(t, 50, m.playouts)
		require.Equal(t, 1, m.goroutines)
	})
}

func TestSearchMove(t *testing.T) {
	ctx := context.Background()

	t.Run("zero budget returns a legal move without touching the board", func(t *testing.T) {
		b := newBoard(t, 9)
		place(t, b, game.Black, "E5")
		before := b.Signature()

		move := NewMCTS(WithDuration(0), WithSeed(3)).SearchMove(ctx, b, game.White)

		require.GreaterOrEqual(t, utils.FindIndex(b.LegalMoves(), move), 0)
		require.Equal(t, before, b.Signature())
	})

	t.Run("full board passes", func(t *testing.T) {
		b := newBoard(t, 4)
		fill(b)

		require.Equal(t, game.Pass, NewMCTS(WithDuration(10*time.Millisecond)).SearchMove(ctx, b, game.Black))
	})

	t.Run("nil board passes", func(t *testing.T) {
		require.Equal(t, game.Pass, NewMCTS().SearchMove(ctx, nil, game.Black))
	})

	t.Run("cancelled context returns a legal move", func(t *testing.T) {
		b := newBoard(t, 7)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		move := NewMCTS(WithSeed(5)).SearchMove(cctx, b, game.Black)

		require.GreaterOrEqual(t, utils.FindIndex(b.LegalMoves(), move), 0)
	})

	t.Run("rule policy completes five", func(t *testing.T) {
		b := newBoard(t, 7)
		place(t, b, game.Black, "A1", "B1", "C1", "D1")
		place(t, b, game.White, "A7", "B7", "C6")
		before := b.Signature()

		m := NewMCTS(WithDuration(100*time.Millisecond), WithPolicy(RulePolicy), WithPlayouts(10), WithSeed(7))
		move := m.SearchMove(ctx, b, game.Black)

		require.Equal(t, vertex(t, b, "E1"), move)
		require.Equal(t, before, b.Signature())
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("collects metrics across goroutines", func(t *testing.T) {
		b := newBoard(t, 7)
		place(t, b, game.Black, "D4")
		before := b.Signature()

		m := NewMCTS(
			WithDuration(50*time.Millisecond),
			WithGoroutines(4),
			WithPlayouts(4),
			WithSeed(11),
			WithMetrics(),
		)
		move, metric := m.Search(ctx, b, game.White)

		require.GreaterOrEqual(t, utils.FindIndex(b.LegalMoves(), move), 0)
		require.Equal(t, before, b.Signature())
		require.Equal(t, 4, metric.Goroutines)
		require.Positive(t, metric.Episodes)
		require.Positive(t, metric.Playouts)
		require.Positive(t, metric.Nodes)
		require.NotEmpty(t, metric.Outcome)
	})

	t.Run("dumps the tree", func(t *testing.T) {
		b := newBoard(t, 5)
		var out bytes.Buffer

		m := NewMCTS(WithDuration(50*time.Millisecond), WithPlayouts(2), WithSeed(13), WithTreeDump(&out))
		m.Search(ctx, b, game.Black)

		require.Contains(t, out.String(), "digraph mcts")
		require.Contains(t, out.String(), "->")
	})
}

func TestCandidates(t *testing.T) {
	b := newBoard(t, 7)
	place(t, b, game.Black, "A1", "B1", "C1", "D1")

	m := NewMCTS(WithPolicy(RulePolicy), WithSamples(4), WithSeed(17))
	s := &session{MCTS: m, rng: newRand(17)}
	picks := s.candidates(b, game.White)

	require.Len(t, picks, 4)
	require.Equal(t, vertex(t, b, "E1"), picks[0], "the forced block comes first")
	for i, p := range picks {
		require.Equal(t, game.Empty, b.Color(p))
		require.Equal(t, i, utils.FindIndex(picks, p), "candidates are distinct")
	}
}

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) {
	panic("writer exploded")
}

// panicCollector fails on the first playout, inside candidate evaluation.
type panicCollector struct {
	metrics.Collector
}

func (panicCollector) AddPlayout(bool) {
	panic("collector exploded")
}

func TestSearchRecovers(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]Option{
		"panic while dumping the tree":        {WithTreeDump(panicWriter{})},
		"panic in a sequential evaluation":    {WithCollector(panicCollector{metrics.NewDummyCollector()})},
		"panic in a goroutine of the fan-out": {WithCollector(panicCollector{metrics.NewDummyCollector()}), WithGoroutines(4)},
	}
	for name, options := range cases {
		t.Run(name, func(t *testing.T) {
			b := newBoard(t, 9)
			place(t, b, game.Black, "E5")
			before := b.Signature()
			m := NewMCTS(append([]Option{WithDuration(20 * time.Millisecond), WithPlayouts(2), WithSeed(19)}, options...)...)

			var move game.Point
			require.NotPanics(t, func() {
				move = m.SearchMove(ctx, b, game.White)
			})

			require.GreaterOrEqual(t, utils.FindIndex(b.LegalMoves(), move), 0)
			require.Equal(t, before, b.Signature())
		})
	}
}
