package engine

import (
	"context"
	"errors"
	"fmt"

	"pegsolitaire/communication"
	"pegsolitaire/game"
	"pegsolitaire/gamemaster"
	"pegsolitaire/meta"
	"pegsolitaire/player"

	"github.com/rs/zerolog/log"
)

// Engine drives one game from the starting configuration to termination.
type Engine interface {
	// Run plays the game and returns the cycle-by-cycle trace.
	Run(ctx context.Context) (Trace, error)
}

// Step is one cycle of a driven game.
type Step struct {
	Cycle  int
	Move   game.Move
	Input  uint8
	Status communication.Status
	Output uint8
	// Hold marks cycles fed after the game was over.
	Hold bool
}

// Trace is the sequence of cycles of one game.
type Trace []Step

// Final returns the status after the last cycle, or nil for an empty trace.
func (t Trace) Final() *communication.Status {
	if len(t) == 0 {
		return nil
	}
	s := t[len(t)-1].Status
	return &s
}

// Moves returns the moves applied before the game was over.
func (t Trace) Moves() []game.Move {
	moves := make([]game.Move, 0, len(t))
	for _, s := range t {
		if !s.Hold {
			moves = append(moves, s.Move)
		}
	}
	return moves
}

// ErrCycleLimit is returned when a game does not finish within the cycle bound.
var ErrCycleLimit = errors.New("cycle limit reached")

type Option func(o *options)

type options struct {
	maxCycles  int
	holdCycles int
}

// WithMaxCycles bounds the number of move cycles in one game.
func WithMaxCycles(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCycles = n
		}
	}
}

// WithHoldCycles sets the number of cycles fed after the game is over.
func WithHoldCycles(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.holdCycles = n
		}
	}
}

func newOptions(holdCycles int, opts []Option) options {
	o := options{maxCycles: meta.MAX_CYCLES, holdCycles: holdCycles}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// observer is called after every reference cycle; a non-nil error stops the game.
type observer func(ctx context.Context, step Step) error

// drive runs enumerate, select, apply on a freshly reset model until the
// game is over, then feeds the last input for the hold cycles. Callers own
// the reset.
func drive(ctx context.Context, model *gamemaster.Model, selector player.Selector, o options, observe observer) (Trace, error) {
	var trace Trace
	var last uint8

	for !model.Status().GameOver {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		if len(trace) >= o.maxCycles {
			return trace, fmt.Errorf("%w: %d cycles without reaching game over", ErrCycleLimit, len(trace))
		}

		move, err := selector.Select(model.Board())
		if err != nil {
			return trace, fmt.Errorf("select move at cycle %d: %w", len(trace)+1, err)
		}
		input, err := communication.PackMove(move)
		if err != nil {
			return trace, err
		}
		u, err := model.Step(input)
		if err != nil {
			return trace, err
		}
		step := Step{Cycle: u.Cycle, Move: move, Input: input, Status: u.Status, Output: communication.MustPackStatus(u.Status)}
		log.Debug().Int("cycle", step.Cycle).Stringer("move", move).Uint8("input", input).Stringer("status", step.Status).Msg("applied move")
		trace = append(trace, step)
		if observe != nil {
			if err := observe(ctx, step); err != nil {
				return trace, err
			}
		}
		last = input
	}

	for i := 0; i < o.holdCycles; i++ {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		u, err := model.Step(last)
		if err != nil {
			return trace, err
		}
		step := Step{Cycle: u.Cycle, Move: communication.UnpackMove(last), Input: last, Status: u.Status, Output: communication.MustPackStatus(u.Status), Hold: true}
		trace = append(trace, step)
		if observe != nil {
			if err := observe(ctx, step); err != nil {
				return trace, err
			}
		}
	}
	return trace, nil
}
