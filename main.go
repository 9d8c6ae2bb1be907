package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"gomoku/config"
	"gomoku/experiments"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (default: gomoku/config.json in the XDG config directories)")
	name := flag.String("experiment", "baseline", "Experiment to run: "+strings.Join(experiments.Names(), ", "))
	size := flag.Int("size", 0, "Board size")
	games := flag.Int("games", 0, "Games per match-up")
	duration := flag.Duration("duration", 0, "MCTS time budget per move")
	timeLimit := flag.Int("time-limit", 0, "Solver time limit per move, in seconds")
	policy := flag.String("policy", "", "Playout policy: random or rule")
	goroutines := flag.Int("goroutines", 0, "Goroutines evaluating MCTS candidates")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	level := flag.String("log-level", "", "Log level")
	moves := flag.Bool("moves", false, "Also write the per-move table")
	tree := flag.Bool("tree", false, "Search the empty board once and write the search tree as DOT instead of running an experiment")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	// Flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.BoardSize = *size
		case "games":
			cfg.Games = *games
		case "duration":
			cfg.Duration = int(duration.Milliseconds())
		case "time-limit":
			cfg.TimeLimit = *timeLimit
		case "policy":
			cfg.Policy = *policy
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *level
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	logLevel, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *tree {
		if err := dumpTree(ctx, cfg, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("failed to dump search tree")
		}
		return
	}

	x, err := experiments.Named(*name, experiments.Settings{Size: cfg.BoardSize, Games: cfg.Games, Base: cfg.Agent()})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up experiment")
	}
	report, err := experiments.Run(ctx, x)
	if err != nil {
		log.Error().Err(err).Msg("experiment did not complete")
		if report == nil {
			os.Exit(1)
		}
	}

	var movesOut io.Writer
	if *moves {
		movesOut = os.Stdout
	}
	if err := report.Write(metrics.NewWriter(os.Stdout, os.Stdout, movesOut)); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}

	summary := metrics.Summarize(report.Games, report.Moves)
	log.Info().
		Int("games", summary.Games).
		Str("wins", fmt.Sprint(summary.Wins)).
		Int("draws", summary.Draws).
		Float64("mean_moves", summary.MeanMoves).
		Float64("std_moves", summary.StdMoves).
		Float64("mean_episodes", summary.MeanEpisodes).
		Msgf("%s summary", x.Name)
}

func dumpTree(ctx context.Context, cfg *config.Config, out io.Writer) error {
	b, err := game.NewBoard(cfg.BoardSize)
	if err != nil {
		return err
	}
	mcts, err := experiments.NewMCTS(cfg.Agent(), searcher.WithTreeDump(out))
	if err != nil {
		return err
	}
	move := mcts.SearchMove(ctx, b, game.Black)
	log.Info().Msgf("best opening move: %s", b.Format(move))
	return nil
}
