package game

import "sync"

// topology holds the size-dependent layout shared by every board of that size.
type topology struct {
	size      int
	length    int       // Number of cells in the padded grid
	points    []Point   // On-board points in ascending order
	neighbors [][]Point // On-board 8-neighbourhood, indexed by point
}

type topologyStore struct {
	mu     sync.Mutex
	bySize map[int]*topology
}

var topologies = &topologyStore{bySize: make(map[int]*topology)}

func topologyFor(size int) *topology {
	topologies.mu.Lock()
	defer topologies.mu.Unlock()
	if t, ok := topologies.bySize[size]; ok {
		return t
	}
	t := newTopology(size)
	topologies.bySize[size] = t
	return t
}

func newTopology(size int) *topology {
	ns := size + 1
	// One border row above and below, one border column between rows, plus the
	// cell reached by a diagonal step from the last point.
	length := size*size + 3*(size+1)

	onBoard := make([]bool, length)
	points := make([]Point, 0, size*size)
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			p := row*ns + col
			onBoard[p] = true
			points = append(points, Point(p))
		}
	}

	offsets := []int{-ns - 1, -ns, -ns + 1, -1, 1, ns - 1, ns, ns + 1}
	neighbors := make([][]Point, length)
	for _, p := range points {
		for _, offset := range offsets {
			q := int(p) + offset
			if q >= 0 && q < length && onBoard[q] {
				neighbors[p] = append(neighbors[p], Point(q))
			}
		}
	}

	return &topology{
		size:      size,
		length:    length,
		points:    points,
		neighbors: neighbors,
	}
}
