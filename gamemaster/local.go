package gamemaster

import (
	"context"
	"fmt"

	"pegsolitaire/communication"
	"pegsolitaire/game"
)

// Model is the in-process reference implementation of Device. It owns one
// board and must be driven by a single sequential loop.
type Model struct {
	board    *game.Board
	status   communication.Status
	cycles   int
	ignored  int
	gameOver bool
}

// NewModel returns a Model in the starting configuration.
func NewModel() *Model {
	m := &Model{}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.board = game.NewBoard()
	m.status = communication.StatusOf(m.board)
	m.cycles = 0
	m.ignored = 0
	m.gameOver = m.status.GameOver
}

// Reset implements Device.
func (m *Model) Reset(ctx context.Context) (uint8, error) {
	m.reset()
	return communication.MustPackStatus(m.status), nil
}

// Cycle implements Device.
func (m *Model) Cycle(ctx context.Context, input uint8) (uint8, error) {
	u, err := m.Step(input)
	return communication.MustPackStatus(u.Status), err
}

// Step runs one cycle: the input is decoded and applied if legal. Once the
// game is over every input is ignored and the status holds. An illegal input
// before that leaves the board unchanged and is reported as an error
// wrapping game.ErrIllegalMove.
func (m *Model) Step(input uint8) (Update, error) {
	m.cycles++
	u := Update{Cycle: m.cycles, Input: input}
	if m.gameOver {
		m.ignored++
		u.Ignored = true
		u.Status = m.status
		return u, nil
	}

	move := communication.UnpackMove(input)
	if err := m.board.Apply(move); err != nil {
		u.Status = m.status
		return u, fmt.Errorf("cycle %d input %#02x: %w", m.cycles, input, err)
	}
	m.status = communication.StatusOf(m.board)
	m.gameOver = m.status.GameOver
	u.Applied = true
	u.Status = m.status
	return u, nil
}

// Play packs and applies a move.
func (m *Model) Play(move game.Move) (Update, error) {
	input, err := communication.PackMove(move)
	if err != nil {
		return Update{}, err
	}
	return m.Step(input)
}

// Board returns a copy of the current board.
func (m *Model) Board() *game.Board { return m.board.Copy() }

// Status returns the current status.
func (m *Model) Status() communication.Status { return m.status }

// Cycles returns the number of cycles since the last reset.
func (m *Model) Cycles() int { return m.cycles }

// Ignored returns the number of cycles ignored because the game was over.
func (m *Model) Ignored() int { return m.ignored }

var _ Device = (*Model)(nil)
