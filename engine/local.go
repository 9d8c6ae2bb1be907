package engine

import (
	"context"
	"time"

	"gomoku/agent"
	"gomoku/experiments/metrics"
	"gomoku/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local runs a game between two in-process agents.
type Local struct {
	board    *game.Board
	agents   map[game.Color]agent.Agent
	ids      map[game.Color]int // AgentConfig.ID per color, for metrics
	maxMoves int
}

func WithMaxMoves(moves int) Option {
	return func(e *Local) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithAgentIDs tags the game metric with the config IDs of the two agents.
func WithAgentIDs(black, white int) Option {
	return func(e *Local) {
		e.ids[game.Black] = black
		e.ids[game.White] = white
	}
}

func LocalEngine(size int, black, white agent.Agent, options ...Option) (*Local, error) {
	if black == nil || white == nil {
		panic("need two agents")
	}
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create board")
	}

	e := &Local{
		board:    board,
		agents:   map[game.Color]agent.Agent{game.Black: black, game.White: white},
		ids:      make(map[game.Color]int, 2),
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Board returns the game board; it must not be modified while Run is in progress.
func (e *Local) Board() *game.Board {
	return e.board
}

// Run executes the entire game loop until a winner is found or no move is left.
func (e *Local) Run(ctx context.Context) (game.Color, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		Black:     e.ids[game.Black],
		White:     e.ids[game.White],
		Winner:    game.Empty,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting on a %dx%d board", e.board.Current(), e.board.Size(), e.board.Size())

	for step := 1; step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msgf("game stopped at move %d", step)
			break
		}
		legal := e.board.LegalMoves()
		if len(legal) == 0 {
			break
		}

		color := e.board.Current()
		move, searchMetric := e.agents[color].FindMove(ctx, e.board.Copy(), color)
		if !e.board.Play(move, color) {
			log.Warn().Msgf("%s agent returned %s, playing %s instead",
				color, e.board.Format(move), e.board.Format(legal[0]))
			move = legal[0]
			e.board.Play(move, color)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       color,
			Move:         e.board.Format(move),
			SearchMetric: searchMetric,
		})

		if e.board.FiveAt(move) {
			gameMetric.Winner = color
			break
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("final position:\n%s", e.board)
	return gameMetric.Winner, gameMetric, moveMetrics
}
