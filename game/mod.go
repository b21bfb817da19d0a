package game

// State is the read-only view of a position that move selectors consume.
// *Board implements it; selectors must not mutate the board behind it.
type State interface {
	LegalMoves() []Move
	IsLegal(Move) bool
	NumPieces() int
	IsGameOver() bool
}

var _ State = (*Board)(nil)
