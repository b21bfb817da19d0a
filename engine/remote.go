package engine

import (
	"context"
	"fmt"

	"pegsolitaire/communication"
	"pegsolitaire/gamemaster"
	"pegsolitaire/meta"
	"pegsolitaire/player"

	"github.com/rs/zerolog/log"
)

// MismatchError reports a cycle where the device under test disagreed with
// the reference model. Cycle 0 is the status right after reset.
type MismatchError struct {
	Cycle int
	Input uint8
	Want  uint8
	Got   uint8
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cycle %d input %#02x: device status %#02x (%s), reference %#02x (%s)",
		e.Cycle, e.Input, e.Got, communication.UnpackStatus(e.Got), e.Want, communication.UnpackStatus(e.Want))
}

// Checked plays a game on the reference model and a device under test in
// lockstep, feeding both the same packed input each cycle and comparing the
// packed status they return. After the game is over it keeps feeding inputs
// for the hold cycles to check that the device status holds steady.
type Checked struct {
	Device   gamemaster.Device
	Model    *gamemaster.Model
	Selector player.Selector
	opts     options
}

// CheckedEngine returns an engine checking device against the reference model.
func CheckedEngine(device gamemaster.Device, selector player.Selector, options ...Option) *Checked {
	if device == nil {
		panic("device is required")
	}
	if selector == nil {
		panic("selector is required")
	}
	return &Checked{
		Device:   device,
		Model:    gamemaster.NewModel(),
		Selector: selector,
		opts:     newOptions(meta.HOLD_CYCLES, options),
	}
}

// Run executes the checked game loop. It stops at the first mismatch.
func (e *Checked) Run(ctx context.Context) (Trace, error) {
	got, err := e.Device.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset device: %w", err)
	}
	want, err := e.Model.Reset(ctx)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, &MismatchError{Cycle: 0, Want: want, Got: got}
	}

	trace, err := drive(ctx, e.Model, e.Selector, e.opts, e.compare)
	if err != nil {
		log.Error().Err(err).Int("cycles", len(trace)).Msg("check failed")
		return trace, err
	}
	log.Info().
		Int("cycles", len(trace)).
		Int("pieces", e.Model.Status().NumPieces).
		Msg("device matched reference model")
	return trace, nil
}

func (e *Checked) compare(ctx context.Context, step Step) error {
	got, err := e.Device.Cycle(ctx, step.Input)
	if err != nil {
		return fmt.Errorf("device cycle %d: %w", step.Cycle, err)
	}
	if got != step.Output {
		return &MismatchError{Cycle: step.Cycle, Input: step.Input, Want: step.Output, Got: got}
	}
	return nil
}
