package metrics

import (
	"fmt"
	"sort"

	"pegsolitaire/utils"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the outcome of a batch of games.
type Summary struct {
	Games        int
	MeanPieces   float64
	StdDevPieces float64
	MinPieces    int
	MaxPieces    int
	MedianPieces float64
	// SinglePiece counts games that ended with one piece left. The status
	// output only reports game over, so this is a statistic, not a verdict.
	SinglePiece int
	MeanMoves   float64
}

// Summarize computes a Summary over records.
func Summarize(records []GameRecord) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	pieces := make([]float64, len(records))
	moves := make([]float64, len(records))
	for i, r := range records {
		pieces[i] = float64(r.FinalPieces)
		moves[i] = float64(r.Moves)
	}
	s.MeanPieces, s.StdDevPieces = stat.MeanStdDev(pieces, nil)
	s.MeanMoves = stat.Mean(moves, nil)

	sort.Float64s(pieces)
	s.MinPieces = int(pieces[0])
	s.MaxPieces = int(pieces[len(pieces)-1])
	s.MedianPieces = stat.Quantile(0.5, stat.Empirical, pieces, nil)
	s.SinglePiece = utils.Count(records, func(r GameRecord) bool { return r.FinalPieces == 1 })
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d pieces mean=%.2f sd=%.2f median=%.1f min=%d max=%d single=%d moves mean=%.2f",
		s.Games, s.MeanPieces, s.StdDevPieces, s.MedianPieces, s.MinPieces, s.MaxPieces, s.SinglePiece, s.MeanMoves)
}
