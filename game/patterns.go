package game

import "golang.org/x/exp/slices"

func (b *Board) axes() [4]int {
	return [4]int{1, b.ns, b.ns + 1, b.ns - 1}
}

// line counts the stones of color adjacent to p along step, in both directions and
// excluding p itself, and how many of the two ends of that run are empty cells.
func (b *Board) line(p Point, step int, color Color) (count, open int) {
	for _, d := range [2]int{step, -step} {
		q := int(p) + d
		for b.cells[q] == color {
			count++
			q += d
		}
		if b.cells[q] == Empty {
			open++
		}
	}
	return count, open
}

// reach is the longest run of color stones that a stone on p would join, capped at 4.
func (b *Board) reach(p Point, color Color) int {
	longest := 0
	for _, step := range b.axes() {
		if count, _ := b.line(p, step, color); count > longest {
			longest = count
		}
	}
	return min(longest, 4)
}

// scan collects the empty points for which match holds on at least one axis, where n is
// the run length a stone of color on the point would produce. Only players have runs.
func (b *Board) scan(color Color, match func(n, open int) bool) []Point {
	if !color.IsPlayer() {
		return nil
	}
	var found []Point
	for _, p := range b.topo.points {
		if b.cells[p] != Empty {
			continue
		}
		for _, step := range b.axes() {
			count, open := b.line(p, step, color)
			if match(count+1, open) {
				found = append(found, p)
				break
			}
		}
	}
	return found
}

// WinningMoves returns the empty points that complete five in a row for color.
func (b *Board) WinningMoves(color Color) []Point {
	return b.scan(color, func(n, _ int) bool {
		return n >= 5
	})
}

// OpenFour returns the empty points that give color a run of exactly four with at least
// one empty extension, i.e. a threat to complete five on the next move.
func (b *Board) OpenFour(color Color) []Point {
	return b.scan(color, func(n, open int) bool {
		return n == 4 && open >= 1
	})
}

// BlockOpenFour returns the empty points where the opponent of color would otherwise
// extend a run of three or four into a four with an empty end, or into a five.
func (b *Board) BlockOpenFour(color Color) []Point {
	return b.scan(color.Opponent(), func(n, open int) bool {
		return n >= 5 || (n == 4 && open >= 1)
	})
}

// OrderMoves ranks the empty points for color by the run a stone there would extend:
// runs of four first, then three, two and one. The remaining points follow, those
// extending the longest opponent run first, then those touching any stone, then the rest.
// Every empty point appears exactly once.
func (b *Board) OrderMoves(color Color) []Point {
	if !color.IsPlayer() {
		return nil
	}
	var buckets [5][]Point
	for _, p := range b.topo.points {
		if b.cells[p] == Empty {
			k := b.reach(p, color)
			buckets[k] = append(buckets[k], p)
		}
	}

	ordered := make([]Point, 0, len(b.topo.points)-b.stones)
	for k := 4; k >= 1; k-- {
		ordered = append(ordered, buckets[k]...)
	}

	rest := buckets[0]
	opponent := color.Opponent()
	rank := make(map[Point]int, len(rest))
	for _, p := range rest {
		rank[p] = 2 * b.reach(p, opponent)
		if b.touchesStone(p) {
			rank[p]++
		}
	}
	slices.SortStableFunc(rest, func(x, y Point) int {
		return rank[y] - rank[x]
	})
	return append(ordered, rest...)
}

func (b *Board) touchesStone(p Point) bool {
	for _, q := range b.topo.neighbors[p] {
		if b.cells[q].IsPlayer() {
			return true
		}
	}
	return false
}
