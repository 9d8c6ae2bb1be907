package metrics

import (
	"gomoku/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int // Top-level search iterations
	Playouts     int
	FullPlayouts int // Playouts that ended in a five or a full board before the cutoff
	Nodes        int // Solver nodes visited or tree nodes created
	Outcome      string
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   string
	SearchMetric
}

type GameMetric struct {
	Black      int        // AgentConfig.ID playing black
	White      int        // AgentConfig.ID playing white
	Winner     game.Color // Empty for a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(goroutines int)
	SetOutcome(outcome string)
	AddEpisode()
	AddPlayout(full bool)
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	startTime    time.Time
	outcome      atomic.Value
	episodes     atomic.Int32
	playouts     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) SetOutcome(outcome string) {
	m.outcome.Store(outcome)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddPlayout(full bool) {
	m.playouts.Add(1)
	if full {
		m.fullPlayouts.Add(1)
	}
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	outcome, _ := m.outcome.Load().(string)
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Playouts:     int(m.playouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Nodes:        int(m.nodes.Load()),
		Outcome:      outcome,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)      {}
func (m *dummyCollector) SetOutcome(outcome string) {}
func (m *dummyCollector) AddEpisode()               {}
func (m *dummyCollector) AddPlayout(full bool)      {}
func (m *dummyCollector) AddNode()                  {}
func (m *dummyCollector) Complete() SearchMetric    { return SearchMetric{} }
