package metrics

import (
	"gomoku/game"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the results of a set of games.
type Summary struct {
	Games        int
	Wins         map[int]int // By AgentConfig.ID
	Draws        int
	MeanMoves    float64
	StdMoves     float64
	MeanEpisodes float64 // Per searched move
	MeanNodes    float64 // Per searched move
}

func Summarize(games []GameRecord, moves []MoveRecord) Summary {
	summary := Summary{
		Games: len(games),
		Wins:  make(map[int]int),
	}

	lengths := make([]float64, 0, len(games))
	for _, g := range games {
		lengths = append(lengths, float64(g.TotalMoves))
		switch g.Winner {
		case game.Black:
			summary.Wins[g.Black]++
		case game.White:
			summary.Wins[g.White]++
		default:
			summary.Draws++
		}
	}
	summary.MeanMoves, summary.StdMoves = meanStdDev(lengths)

	episodes := make([]float64, 0, len(moves))
	nodes := make([]float64, 0, len(moves))
	for _, m := range moves {
		episodes = append(episodes, float64(m.Episodes))
		nodes = append(nodes, float64(m.Nodes))
	}
	summary.MeanEpisodes, _ = meanStdDev(episodes)
	summary.MeanNodes, _ = meanStdDev(nodes)

	return summary
}

// meanStdDev returns zeros for empty samples and a zero deviation for a single value.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
