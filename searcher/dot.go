package searcher

import (
	"fmt"
	"io"

	"gomoku/game"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const graphName = "mcts"

// writeDot writes the table as a directed Graphviz graph, breadth first from the root.
// Each node is labelled with the move leading to it and its wins/simulations.
func (t *table) writeDot(w io.Writer, size int) error {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}

	ids := make(map[game.Signature]string, t.size())
	queue := []game.Signature{t.root}
	for len(queue) > 0 {
		sig := queue[0]
		queue = queue[1:]

		n := t.nodes[sig]
		id := fmt.Sprintf("n%d", len(ids))
		ids[sig] = id
		label := fmt.Sprintf("%q", fmt.Sprintf("%s %.1f/%.0f", game.FormatPoint(n.move, size), n.wins, n.sims))
		if err := g.AddNode(graphName, id, map[string]string{"label": label}); err != nil {
			return errors.Wrapf(err, "failed to add node %s", id)
		}
		if sig != t.root {
			if err := g.AddEdge(ids[n.parent], id, true, nil); err != nil {
				return errors.Wrapf(err, "failed to add edge to %s", id)
			}
		}
		queue = append(queue, t.children[sig]...)
	}

	_, err := io.WriteString(w, g.String())
	return err
}
