// Package communication holds the packed integer encodings exchanged with a
// companion hardware implementation of the board.
//
// Move input, LSB first:
//
//	bits 0-2  x
//	bits 3-5  y
//	bits 6-7  direction ordinal (up=0, down=1, left=2, right=3)
//
// Status output:
//
//	bits 0-5  number of pieces on the board
//	bit  6    game over
package communication

import (
	"fmt"

	"pegsolitaire/game"
)

const (
	moveXShift   = 0 // 3 bits
	moveYShift   = 3 // 3 bits
	moveDirShift = 6 // 2 bits

	coordMask = 0x7
	dirMask   = 0x3

	statusPiecesMask   = 0x3F
	statusGameOverFlag = 1 << 6
)

// MaxPieces is the largest count the status encoding can carry.
const MaxPieces = statusPiecesMask

// PackMove encodes m as a move input byte.
func PackMove(m game.Move) (uint8, error) {
	if m.X < 0 || m.X > coordMask || m.Y < 0 || m.Y > coordMask {
		return 0, fmt.Errorf("cannot pack move %s: coordinates out of range", m)
	}
	if !m.Dir.Valid() {
		return 0, fmt.Errorf("cannot pack move %s: unknown direction", m)
	}
	v := uint8(m.X)<<moveXShift |
		uint8(m.Y)<<moveYShift |
		uint8(m.Dir)<<moveDirShift
	return v, nil
}

// UnpackMove decodes a move input byte. Every byte decodes to some move;
// whether it is legal is up to the board.
func UnpackMove(v uint8) game.Move {
	return game.Move{
		X:   int(v >> moveXShift & coordMask),
		Y:   int(v >> moveYShift & coordMask),
		Dir: game.Direction(v >> moveDirShift & dirMask),
	}
}

// Status is the observable state of a board.
type Status struct {
	NumPieces int  `json:"num_pieces"`
	GameOver  bool `json:"game_over"`
}

// StatusOf reports the status of b.
func StatusOf(b *game.Board) Status {
	return Status{NumPieces: b.NumPieces(), GameOver: b.IsGameOver()}
}

func (s Status) String() string {
	return fmt.Sprintf("pieces=%d game_over=%t", s.NumPieces, s.GameOver)
}

// PackStatus encodes s as a status output byte.
func PackStatus(s Status) (uint8, error) {
	if s.NumPieces < 0 || s.NumPieces > MaxPieces {
		return 0, fmt.Errorf("cannot pack status: %d pieces out of range", s.NumPieces)
	}
	v := uint8(s.NumPieces)
	if s.GameOver {
		v |= statusGameOverFlag
	}
	return v, nil
}

// UnpackStatus decodes a status output byte. Bit 7 is unused and ignored.
func UnpackStatus(v uint8) Status {
	return Status{
		NumPieces: int(v & statusPiecesMask),
		GameOver:  v&statusGameOverFlag != 0,
	}
}

// MustPackStatus is PackStatus for counts known to come from a board.
func MustPackStatus(s Status) uint8 {
	v, err := PackStatus(s)
	if err != nil {
		panic(err)
	}
	return v
}
