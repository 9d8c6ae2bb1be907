package searcher

import (
	"gomoku/game"
)

// node holds the statistics of one position, from the searching color's perspective.
type node struct {
	sims   float64
	wins   float64
	parent game.Signature
	move   game.Point // Move from parent
}

func (n *node) ratio() float64 {
	return n.wins / n.sims
}

// table indexes the positions reached in one search by signature. A position reached
// along two move orders shares one node, owned by the parent that reached it first.
type table struct {
	root     game.Signature
	nodes    map[game.Signature]*node
	children map[game.Signature][]game.Signature // In insertion order
}

func newTable(root game.Signature) *table {
	return &table{
		root:     root,
		nodes:    map[game.Signature]*node{root: {move: game.Pass}},
		children: make(map[game.Signature][]game.Signature),
	}
}

func (t *table) size() int {
	return len(t.nodes)
}

func (t *table) get(sig game.Signature) (*node, bool) {
	n, ok := t.nodes[sig]
	return n, ok
}

// insert records one simulated candidate under parent, or adds to the existing node of
// the same position. It reports whether a node was created.
func (t *table) insert(sig, parent game.Signature, move game.Point, ratio float64) bool {
	if n, ok := t.nodes[sig]; ok {
		n.sims++
		n.wins += ratio
		return false
	}
	t.nodes[sig] = &node{sims: 1, wins: ratio, parent: parent, move: move}
	t.children[parent] = append(t.children[parent], sig)
	return true
}

// backup adds one simulation worth ratio to sig and every ancestor up to the root.
func (t *table) backup(sig game.Signature, ratio float64) {
	for {
		n, ok := t.nodes[sig]
		if !ok {
			return
		}
		n.sims++
		n.wins += ratio
		if sig == t.root {
			return
		}
		sig = n.parent
	}
}

// best returns the move to the child of sig with the highest win ratio. Ties go to the
// child inserted first.
func (t *table) best(sig game.Signature) (game.Point, bool) {
	var best *node
	for _, child := range t.children[sig] {
		n := t.nodes[child]
		if best == nil || n.ratio() > best.ratio() {
			best = n
		}
	}
	if best == nil {
		return game.Pass, false
	}
	return best.move, true
}

// selects returns the child of sig with the highest UCT value for the side to move.
// Win ratios are the searching color's, so the opponent scores a child by its losses.
func (t *table) selects(sig game.Signature, maximize bool) (*node, bool) {
	children := t.children[sig]
	if len(children) == 0 {
		return nil, false
	}
	u := newUCT(CSquared, t.nodes[sig].sims)

	var best *node
	var bestValue float64
	for _, child := range children {
		n := t.nodes[child]
		q := n.wins
		if !maximize {
			q = n.sims - n.wins
		}
		value := u.evaluate(q, n.sims)
		if best == nil || value > bestValue {
			best, bestValue = n, value
		}
	}
	return best, true
}
