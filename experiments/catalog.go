package experiments

import (
	"gomoku/experiments/metrics"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var ErrUnknownExperiment = errors.New("unknown experiment")

// Settings are shared by every named experiment. Base is the MCTS agent the
// variants are derived from.
type Settings struct {
	Size  int
	Games int
	Base  metrics.AgentConfig
}

var catalog = map[string]func(Settings) Experiment{
	"baseline":        Baseline,
	"policy":          PolicyComparison,
	"parallelization": Parallelization,
	"cutoff":          Cutoff,
	"solver":          SolverComparison,
}

// Names lists the named experiments in lexical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Named(name string, s Settings) (Experiment, error) {
	build, ok := catalog[name]
	if !ok {
		return Experiment{}, errors.Wrapf(ErrUnknownExperiment, "%q, want one of %v", name, Names())
	}
	return build(s), nil
}

func derive(base metrics.AgentConfig, id int, kind metrics.AgentKind) metrics.AgentConfig {
	config := base
	config.ID = id
	config.Kind = kind
	return config
}

// Baseline pairs the MCTS agent against random play.
func Baseline(s Settings) Experiment {
	return Experiment{
		Name:  "baseline",
		Size:  s.Size,
		Games: s.Games,
		MatchUps: []MatchUp{
			{derive(s.Base, 1, metrics.MCTSAgent), derive(s.Base, 2, metrics.RandomAgent)},
		},
	}
}

// PolicyComparison pairs random playouts against rule-based playouts.
func PolicyComparison(s Settings) Experiment {
	random := derive(s.Base, 1, metrics.MCTSAgent)
	random.Policy = "random"
	rule := derive(s.Base, 2, metrics.MCTSAgent)
	rule.Policy = "rule"
	return Experiment{
		Name:     "policy",
		Size:     s.Size,
		Games:    s.Games,
		MatchUps: []MatchUp{{random, rule}},
	}
}

// Parallelization pairs the sequential agent against agents evaluating candidates
// on more goroutines within the same time budget.
func Parallelization(s Settings) Experiment {
	baseline := derive(s.Base, 0, metrics.MCTSAgent)
	baseline.Goroutines = 1

	x := Experiment{Name: "parallelization", Size: s.Size, Games: s.Games}
	for i, goroutines := range []int{2, 4, 8} {
		config := derive(s.Base, i+1, metrics.MCTSAgent)
		config.Goroutines = goroutines
		x.MatchUps = append(x.MatchUps, MatchUp{baseline, config})
	}
	return x
}

// Cutoff pairs full playouts against playouts cut after a number of plies.
func Cutoff(s Settings) Experiment {
	baseline := derive(s.Base, 0, metrics.MCTSAgent)
	baseline.Cutoff = 0 // Without cutoff (full playout)

	x := Experiment{Name: "cutoff", Size: s.Size, Games: s.Games}
	for i, cutoff := range []int{10, 25, 50} {
		config := derive(s.Base, i+1, metrics.MCTSAgent)
		config.Cutoff = cutoff
		x.MatchUps = append(x.MatchUps, MatchUp{baseline, config})
	}
	return x
}

// SolverComparison pairs the solver-first agent against plain MCTS.
func SolverComparison(s Settings) Experiment {
	return Experiment{
		Name:  "solver",
		Size:  s.Size,
		Games: s.Games,
		MatchUps: []MatchUp{
			{derive(s.Base, 1, metrics.SolverAgent), derive(s.Base, 2, metrics.MCTSAgent)},
		},
	}
}
