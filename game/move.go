package game

import "fmt"

// Move is a jump of the piece at (X, Y) in direction Dir. It carries no
// reference to the board it was generated from.
type Move struct {
	X   int
	Y   int
	Dir Direction
}

// NewMove returns the move jumping the piece at (x, y) in direction d.
func NewMove(x, y int, d Direction) Move {
	return Move{X: x, Y: y, Dir: d}
}

// From returns the cell holding the jumping piece.
func (m Move) From() Cell { return Cell{X: m.X, Y: m.Y} }

// Jumped returns the cell whose piece is captured.
func (m Move) Jumped() Cell { return m.From().Step(m.Dir, 1) }

// Landing returns the cell the jumping piece ends on.
func (m Move) Landing() Cell { return m.From().Step(m.Dir, 2) }

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d) %s", m.X, m.Y, m.Dir)
}
