package gamemaster

import (
	"context"

	"pegsolitaire/communication"
)

// Device is the cycle-level contract of a board implementation: the
// in-process reference Model, a remote model session, or a bridge to a
// hardware simulation. Inputs and outputs use the packed encodings of the
// communication package.
type Device interface {
	// Reset puts the device in the starting configuration and returns its
	// packed status.
	Reset(ctx context.Context) (uint8, error)
	// Cycle feeds one packed move input and returns the packed status after
	// the cycle.
	Cycle(ctx context.Context, input uint8) (uint8, error)
}

// Update describes one cycle of the reference model.
type Update struct {
	Cycle   int                  `json:"cycle"`
	Input   uint8                `json:"input"`
	Status  communication.Status `json:"status"`
	Applied bool                 `json:"applied"`
	Ignored bool                 `json:"ignored"`
}
