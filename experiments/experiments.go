package experiments

import (
	"context"
	"time"

	"gomoku/agent"
	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/solver"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoGames      = errors.New("experiment needs at least one game per match-up")
	ErrNoMatchUps   = errors.New("experiment needs at least one match-up")
	ErrUnknownAgent = errors.New("unknown agent kind")
)

// MatchUp pairs two agents. The first agent takes Black in odd games, the second in even games.
type MatchUp [2]metrics.AgentConfig

type Experiment struct {
	Name     string
	Size     int
	Games    int // Per match-up
	MatchUps []MatchUp
}

type Report struct {
	Name    string
	Configs []metrics.AgentConfig
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary metrics.Summary
}

// Write stores the report tables through w.
func (r *Report) Write(w *metrics.Writer) error {
	return w.WriteAll(r.Configs, r.Games, r.Moves)
}

// Configs returns the distinct agent configs of the match-ups, in order of appearance.
func (x Experiment) Configs() []metrics.AgentConfig {
	seen := make(map[int]bool)
	var configs []metrics.AgentConfig
	for _, matchUp := range x.MatchUps {
		for _, config := range matchUp {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}
	return configs
}

// Run plays every match-up the configured number of times and summarises the games.
func Run(ctx context.Context, x Experiment) (*Report, error) {
	if x.Games < 1 {
		return nil, errors.Wrapf(ErrNoGames, "experiment %s", x.Name)
	}
	if len(x.MatchUps) == 0 {
		return nil, errors.Wrapf(ErrNoMatchUps, "experiment %s", x.Name)
	}

	report := &Report{Name: x.Name, Configs: x.Configs()}
	count := 0

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchUp := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent%d=%s and agent%d=%s...",
			mi+1, len(x.MatchUps), matchUp[0].ID, matchUp[0].Kind, matchUp[1].ID, matchUp[1].Kind)

		for i := 0; i < x.Games; i++ {
			if err := ctx.Err(); err != nil {
				return report, errors.Wrapf(err, "experiment %s interrupted", x.Name)
			}
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}
			count++

			winner, gameMetric, moveMetrics, err := runGame(ctx, x.Size, black, white, uint64(count))
			if err != nil {
				return report, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			report.Games = append(report.Games, metrics.GameRecord{
				ID:         count,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				report.Moves = append(report.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(x.MatchUps), i+1, x.Games, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(x.MatchUps))
	}

	report.Summary = metrics.Summarize(report.Games, report.Moves)
	log.Info().Msgf("completed %s experiment: %d games, %d draws", x.Name, report.Summary.Games, report.Summary.Draws)
	return report, nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, size int, black, white metrics.AgentConfig, salt uint64) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	blackAgent, err := createAgent(black, salt)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	whiteAgent, err := createAgent(white, salt)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	e, err := engine.LocalEngine(size, blackAgent, whiteAgent, engine.WithAgentIDs(black.ID, white.ID))
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

// createAgent builds the agent described by config. Seeded configs are offset by salt so
// repeated games differ but stay reproducible.
func createAgent(config metrics.AgentConfig, salt uint64) (agent.Agent, error) {
	if config.Seed != 0 {
		config.Seed += salt
	}

	switch config.Kind {
	case metrics.RandomAgent:
		seed := config.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return agent.NewRandomAgent(seed), nil
	case metrics.MCTSAgent:
		mcts, err := NewMCTS(config)
		if err != nil {
			return nil, err
		}
		return agent.NewSearchAgent(mcts), nil
	case metrics.SolverAgent:
		mcts, err := NewMCTS(config)
		if err != nil {
			return nil, err
		}
		options := []solver.Option{solver.WithMetrics()}
		if config.TimeLimit > 0 {
			options = append(options, solver.WithTimeLimit(config.TimeLimit))
		}
		return agent.NewSolverAgent(solver.NewSolver(options...), agent.NewSearchAgent(mcts)), nil
	}
	return nil, errors.Wrapf(ErrUnknownAgent, "%q", config.Kind)
}

// NewMCTS builds the searcher described by config, with metrics and any extra options.
func NewMCTS(config metrics.AgentConfig, extra ...searcher.Option) (*searcher.MCTS, error) {
	policy, err := searcher.ParsePolicy(config.Policy)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{searcher.WithPolicy(policy), searcher.WithMetrics()}

	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Samples > 0 {
		options = append(options, searcher.WithSamples(config.Samples))
	}
	if config.Playouts > 0 {
		options = append(options, searcher.WithPlayouts(config.Playouts))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	return searcher.NewMCTS(append(options, extra...)...), nil
}
