package searcher

import "math"

// Exploration constant
const CSquared = 2.0

// Playout rewards from the searching color's perspective
const (
	WIN  = 1.0
	DRAW = WIN / 2
	LOSS = 0.0
)

type uct struct {
	numerator float64
}

// newUCT precomputes the exploration numerator for a parent simulated N times, so the
// children of one table node can be compared without recomputing the logarithm.
func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

// evaluate scores a child with n simulations of which q were won by the side choosing it.
func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/n + math.Sqrt(u.numerator/n)
}
