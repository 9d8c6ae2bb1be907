package metrics

import "time"

type AgentKind string

const (
	MCTSAgent   AgentKind = "mcts"
	SolverAgent AgentKind = "solver" // Solver first, MCTS when unresolved
	RandomAgent AgentKind = "random"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID         int
	Kind       AgentKind
	Duration   time.Duration // MCTS time budget per move
	TimeLimit  time.Duration // Solver time budget per move
	Samples    int
	Playouts   int
	Cutoff     int
	Policy     string
	Goroutines int
	Seed       uint64
}
