package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalMove is matched by every error Board.Check and Board.Apply return.
var ErrIllegalMove = errors.New("illegal move")

// Reasons a move fails the legality test.
var (
	ErrBadDirection   = errors.New("unknown direction")
	ErrOffBoard       = errors.New("cell is not on the board")
	ErrNoPiece        = errors.New("no piece to move")
	ErrNothingToJump  = errors.New("no piece to jump over")
	ErrLandingBlocked = errors.New("landing cell is occupied")
)

// IllegalMoveError reports a move that failed the legality test.
type IllegalMoveError struct {
	Move   Move
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %v", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return e.Reason }

func (e *IllegalMoveError) Is(target error) bool { return target == ErrIllegalMove }

// Board is the occupancy of every playable cell. Only cells in TopologyMask
// are ever occupied.
type Board struct {
	pieces Bitboard
}

// NewBoard returns a board in the starting configuration: every playable
// cell occupied except the center.
func NewBoard() *Board {
	return &Board{pieces: TopologyMask.Remove(Center)}
}

// BoardFromBits builds a board from raw occupancy bits.
func BoardFromBits(bits Bitboard) (*Board, error) {
	if extra := bits &^ TopologyMask; extra != 0 {
		return nil, fmt.Errorf("occupancy %#x has bits outside the board: %#x", uint64(bits), uint64(extra))
	}
	return &Board{pieces: bits}, nil
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	return &Board{pieces: b.pieces}
}

// Bits returns the packed occupancy of the board.
func (b *Board) Bits() Bitboard { return b.pieces }

// Has reports whether (x, y) holds a piece.
func (b *Board) Has(x, y int) bool {
	return b.pieces.Has(Cell{X: x, Y: y})
}

// NumPieces returns the number of occupied cells.
func (b *Board) NumPieces() int { return b.pieces.Count() }

// Check runs the legality test on m and returns nil if it passes:
// the source holds a piece, the jumped cell exists and holds a piece,
// the landing cell exists and is empty.
func (b *Board) Check(m Move) error {
	if !m.Dir.Valid() {
		return &IllegalMoveError{Move: m, Reason: ErrBadDirection}
	}
	from, jumped, landing := m.From(), m.Jumped(), m.Landing()
	if !from.Exists() || !jumped.Exists() || !landing.Exists() {
		return &IllegalMoveError{Move: m, Reason: ErrOffBoard}
	}
	if !b.pieces.Has(from) {
		return &IllegalMoveError{Move: m, Reason: ErrNoPiece}
	}
	if !b.pieces.Has(jumped) {
		return &IllegalMoveError{Move: m, Reason: ErrNothingToJump}
	}
	if b.pieces.Has(landing) {
		return &IllegalMoveError{Move: m, Reason: ErrLandingBlocked}
	}
	return nil
}

// IsLegal reports whether m passes Check.
func (b *Board) IsLegal(m Move) bool {
	return b.Check(m) == nil
}

// LegalMoves enumerates every legal move in canonical order: increasing y,
// then x, then direction ordinal.
func (b *Board) LegalMoves() []Move {
	var moves []Move
	b.pieces.Iter(func(c Cell) {
		for _, d := range Directions {
			m := Move{X: c.X, Y: c.Y, Dir: d}
			if b.Check(m) == nil {
				moves = append(moves, m)
			}
		}
	})
	return moves
}

// Apply plays m. The source and jumped pieces are removed and the landing
// cell is filled in one step; an illegal move leaves the board unchanged.
func (b *Board) Apply(m Move) error {
	if err := b.Check(m); err != nil {
		return err
	}
	b.pieces = b.pieces.Remove(m.From()).Remove(m.Jumped()).Add(m.Landing())
	return nil
}

// IsGameOver reports whether no legal move remains. It does not distinguish
// a single remaining piece from a stalled position.
func (b *Board) IsGameOver() bool {
	return len(b.LegalMoves()) == 0
}

// String draws the board with 'o' for a piece, '.' for an empty cell and a
// space outside the cross.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			switch {
			case !Exists(x, y):
				sb.WriteByte(' ')
			case b.Has(x, y):
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		if y < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
