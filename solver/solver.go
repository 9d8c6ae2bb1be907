// Package solver proves Gomoku positions by exhaustive OR/AND search under a time limit.
package solver

import (
	"context"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Recognised range for time limits given in whole seconds.
const (
	MinTimeLimit     = 1
	MaxTimeLimit     = 100
	DefaultTimeLimit = time.Second
)

var (
	ErrInvalidColor   = errors.New("color must be black or white")
	ErrNilBoard       = errors.New("board is nil")
	ErrTimeLimitRange = errors.New("time limit out of range")
)

// Outcome is an exact result for the side to move at the root, or Unknown.
type Outcome int

const (
	Unknown Outcome = iota
	Win
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Kind tags a search node: at Or nodes the root player moves and needs one winning
// move, at And nodes the opponent moves and needs one refutation.
type Kind int

const (
	Or Kind = iota
	And
)

func (k Kind) Flip() Kind {
	if k == Or {
		return And
	}
	return Or
}

func (k Kind) String() string {
	if k == Or {
		return "or"
	}
	return "and"
}

type Option func(s *Solver)

type Solver struct {
	timeLimit   time.Duration
	withMetrics bool
	last        metrics.SearchMetric
}

func WithTimeLimit(limit time.Duration) Option {
	return func(s *Solver) {
		if limit > 0 {
			s.timeLimit = limit
		}
	}
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.withMetrics = true
	}
}

func NewSolver(options ...Option) *Solver {
	s := &Solver{timeLimit: DefaultTimeLimit}
	for _, option := range options {
		option(s)
	}
	return s
}

// ValidateTimeLimit checks a time limit given in whole seconds.
func ValidateTimeLimit(seconds int) error {
	if seconds < MinTimeLimit || seconds > MaxTimeLimit {
		return errors.Wrapf(ErrTimeLimitRange, "%d not in [%d, %d]", seconds, MinTimeLimit, MaxTimeLimit)
	}
	return nil
}

func (s *Solver) TimeLimit() time.Duration { return s.timeLimit }

// Metrics returns the metrics of the last Solve call, if collected.
func (s *Solver) Metrics() metrics.SearchMetric { return s.last }

// Solve determines whether color, moving next on b, can force a win, can at best draw,
// or loses against best play. The move is set for Win and Draw only. When the time limit
// or ctx expires first the outcome is Unknown. The board is restored before returning.
func (s *Solver) Solve(ctx context.Context, b *game.Board, color game.Color) (Outcome, game.Point, error) {
	if b == nil {
		return Unknown, game.Pass, ErrNilBoard
	}
	if !color.IsPlayer() {
		return Unknown, game.Pass, errors.Wrapf(ErrInvalidColor, "got %s", color)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	collector := metrics.NewDummyCollector()
	if s.withMetrics {
		collector = metrics.NewCollector()
	}
	collector.Start(1)

	current := b.Current()
	defer b.SetCurrent(current)

	var outcome Outcome
	var move game.Point
	if over, winner := b.CheckTerminal(); over {
		outcome = Loss
		if winner == color {
			outcome = Win
		}
	} else {
		outcome, move = search(ctx, b, color, Or, collector.AddNode)
	}

	collector.SetOutcome(outcome.String())
	s.last = collector.Complete()
	log.Debug().
		Str("color", color.String()).
		Str("outcome", outcome.String()).
		Str("move", b.Format(move)).
		Dur("limit", s.timeLimit).
		Int("nodes", s.last.Nodes).
		Msg("solve")
	return outcome, move, nil
}

// search evaluates the position for the root player, with color to move at a node of
// the given kind. Every trial move is undone before search returns.
func search(ctx context.Context, b *game.Board, color game.Color, kind Kind, visit func()) (Outcome, game.Point) {
	visit()
	if ctx.Err() != nil {
		return Unknown, game.Pass
	}

	moves := b.OrderMoves(color)
	if len(moves) == 0 {
		return Draw, game.Pass
	}

	drawMove := game.Pass
	for _, move := range moves {
		outcome := try(ctx, b, move, color, kind, visit)
		switch {
		case outcome == Unknown:
			return Unknown, game.Pass
		case kind == Or && outcome == Win:
			return Win, move
		case kind == And && outcome == Loss:
			return Loss, game.Pass
		case outcome == Draw && drawMove == game.Pass:
			drawMove = move
		}
	}

	if drawMove != game.Pass {
		if kind == Or {
			return Draw, drawMove
		}
		return Draw, game.Pass
	}
	if kind == Or {
		return Loss, game.Pass
	}
	return Win, game.Pass
}

// try plays move, evaluates the resulting position and undoes the move.
func try(ctx context.Context, b *game.Board, move game.Point, color game.Color, kind Kind, visit func()) Outcome {
	undo, ok := b.Try(move, color)
	defer undo()
	if !ok {
		// Ordered moves are always empty cells
		panic("solver: ordered move is not playable")
	}

	if b.FiveAt(move) {
		if kind == Or {
			return Win
		}
		return Loss
	}
	outcome, _ := search(ctx, b, color.Opponent(), kind.Flip(), visit)
	return outcome
}
