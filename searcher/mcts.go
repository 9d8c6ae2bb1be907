// Package searcher estimates good moves by Monte Carlo tree search over a table of
// positions keyed by board signature.
package searcher

import (
	"context"
	"fmt"
	"io"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// MaxCutoff bounds playouts on the largest board.
const MaxCutoff = game.MaxSize * game.MaxSize

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines  int
	duration    time.Duration
	samples     int
	playouts    int
	cutoff      int
	policy      Policy
	seed        uint64
	seeded      bool
	withMetrics bool
	collector   metrics.Collector
	dump        io.Writer
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration >= 0 {
			m.duration = duration
		}
	}
}

func WithSamples(samples int) Option {
	return func(m *MCTS) {
		if samples > 0 {
			m.samples = samples
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(m *MCTS) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithPolicy(policy Policy) Option {
	return func(m *MCTS) {
		m.policy = policy
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.withMetrics = true
	}
}

// WithCollector reports the metrics of every Search call to collector.
func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.collector = collector
		}
	}
}

// WithTreeDump writes the search table of every Search call to w as a DOT graph.
func WithTreeDump(w io.Writer) Option {
	return func(m *MCTS) {
		m.dump = w
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		duration:   meta.DURATION,
		samples:    meta.SAMPLES,
		playouts:   meta.PLAYOUTS,
		cutoff:     MaxCutoff,
		policy:     RandomPolicy,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Duration() time.Duration { return m.duration }
func (m *MCTS) Policy() Policy          { return m.policy }

// SearchMove returns the estimated best move for color on b.
func (m *MCTS) SearchMove(ctx context.Context, b *game.Board, color game.Color) game.Point {
	move, _ := m.Search(ctx, b, color)
	return move
}

// Search runs iterations until the time budget is spent or ctx is done and returns the
// child of the root with the best win ratio. Without any evaluated candidate it returns
// a random legal move, and Pass when there is none. b is never modified.
func (m *MCTS) Search(ctx context.Context, b *game.Board, color game.Color) (move game.Point, metric metrics.SearchMetric) {
	if b == nil {
		return game.Pass, metric
	}
	if !color.IsPlayer() {
		color = b.Current()
	}

	collector := metrics.NewDummyCollector()
	switch {
	case m.collector != nil:
		collector = m.collector
	case m.withMetrics:
		collector = metrics.NewCollector()
	}
	collector.Start(m.goroutines)

	s := &session{
		MCTS:      m,
		root:      b.Copy(),
		color:     color,
		rng:       newRand(m.nextSeed()),
		collector: collector,
		best:      game.Pass,
	}
	s.table = newTable(s.root.Signature())

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("mcts search aborted")
			move = s.fallback()
		}
		collector.SetOutcome(fmt.Sprintf("%.3f", s.bestRatio()))
		metric = collector.Complete()
	}()

	if len(s.root.LegalMoves()) == 0 {
		return game.Pass, metric
	}

	ctx, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()
	for ctx.Err() == nil {
		if err := s.iterate(ctx); err != nil {
			log.Warn().Err(err).Msg("mcts iteration failed")
			break
		}
		collector.AddEpisode()
		if best, ok := s.table.best(s.table.root); ok {
			s.best = best
		}
	}

	if m.dump != nil {
		if err := s.table.writeDot(m.dump, b.Size()); err != nil {
			log.Warn().Err(err).Msg("failed to dump search tree")
		}
	}

	move = s.fallback()
	log.Debug().
		Str("color", color.String()).
		Str("move", b.Format(move)).
		Int("nodes", s.table.size()).
		Float64("ratio", s.bestRatio()).
		Msg("mcts")
	return move, metric
}

func (m *MCTS) nextSeed() uint64 {
	if m.seeded {
		return m.seed
	}
	return uint64(time.Now().UnixNano())
}

// session is the state of one Search call.
type session struct {
	*MCTS
	root      *game.Board
	color     game.Color
	table     *table
	rng       *rand.Rand
	collector metrics.Collector
	best      game.Point
}

// iterate runs one iteration: it descends the table from the best move, evaluates a
// sample of candidates by playouts and records them.
func (s *session) iterate(ctx context.Context) error {
	pos := s.root.Copy()
	toMove := s.color
	if s.best != game.Pass {
		pos.Play(s.best, toMove)
		toMove = toMove.Opponent()
	}
	for {
		child, ok := s.table.selects(pos.Signature(), toMove == s.color)
		if !ok {
			break
		}
		pos.Play(child.move, toMove)
		toMove = toMove.Opponent()
	}
	sig := pos.Signature()

	// A decided position is its own playout
	if over, winner := pos.CheckTerminal(); over {
		s.table.backup(sig, reward(winner, s.color))
		return nil
	}
	candidates := s.candidates(pos, toMove)
	if len(candidates) == 0 {
		s.table.backup(sig, DRAW)
		return nil
	}

	evaluations, err := s.evaluateAll(ctx, pos, toMove, candidates)
	if err != nil {
		return err
	}
	for _, e := range evaluations {
		if e.playouts == 0 {
			continue
		}
		if s.table.insert(e.signature, sig, e.move, e.ratio()) {
			s.collector.AddNode()
		}
		s.table.backup(sig, e.ratio())
	}
	return nil
}

// candidates returns the tactical moves of the rule policy first, then distinct random
// legal moves, up to the sample size.
func (s *session) candidates(pos *game.Board, toMove game.Color) []game.Point {
	picks := make([]game.Point, 0, s.samples)
	if s.policy == RulePolicy {
		picks = utils.AppendUnique(picks, s.samples, RuleMoves(pos, toMove)...)
	}
	legal := pos.LegalMoves()
	for _, i := range s.rng.Perm(len(legal)) {
		if len(picks) >= s.samples {
			break
		}
		picks = utils.AppendUnique(picks, s.samples, legal[i])
	}
	return picks
}

func (s *session) evaluateAll(ctx context.Context, pos *game.Board, toMove game.Color, candidates []game.Point) ([]evaluation, error) {
	evaluations := make([]evaluation, len(candidates))
	if s.goroutines <= 1 {
		for i, move := range candidates {
			evaluations[i] = evaluate(ctx, pos, move, toMove, s.color, s.playouts, s.cutoff, s.policy, s.rng, s.collector)
		}
		return evaluations, nil
	}

	seeds := make([]uint64, len(candidates))
	for i := range seeds {
		seeds[i] = s.rng.Uint64()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, move := range candidates {
		i, move := i, move
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("panic evaluating candidate %d: %v", move, r)
				}
			}()
			rng := newRand(seeds[i])
			evaluations[i] = evaluate(gctx, pos, move, toMove, s.color, s.playouts, s.cutoff, s.policy, rng, s.collector)
			return nil
		})
	}
	return evaluations, g.Wait()
}

// fallback returns the best move found, else a random legal move, else Pass.
func (s *session) fallback() game.Point {
	if s.best != game.Pass {
		return s.best
	}
	legal := s.root.LegalMoves()
	if len(legal) == 0 {
		return game.Pass
	}
	return legal[s.rng.Intn(len(legal))]
}

func (s *session) bestRatio() float64 {
	for _, sig := range s.table.children[s.table.root] {
		if n := s.table.nodes[sig]; n.move == s.best {
			return n.ratio()
		}
	}
	return 0
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
