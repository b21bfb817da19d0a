package engine

import (
	"context"
	"time"

	"pegsolitaire/gamemaster"
	"pegsolitaire/player"

	"github.com/rs/zerolog/log"
)

// Local plays a game on the in-process reference model only. Its trace is
// the golden trace for the selector it was given.
type Local struct {
	Model    *gamemaster.Model
	Selector player.Selector
	opts     options
}

// LocalEngine returns an engine playing selector's moves on a fresh model.
func LocalEngine(selector player.Selector, options ...Option) *Local {
	if selector == nil {
		panic("selector is required")
	}
	return &Local{
		Model:    gamemaster.NewModel(),
		Selector: selector,
		opts:     newOptions(0, options),
	}
}

// Run executes the game loop until no legal moves remain.
func (e *Local) Run(ctx context.Context) (Trace, error) {
	start := time.Now()
	if _, err := e.Model.Reset(ctx); err != nil {
		return nil, err
	}
	trace, err := drive(ctx, e.Model, e.Selector, e.opts, nil)
	if err != nil {
		log.Error().Err(err).Int("cycles", len(trace)).Msg("game aborted")
		return trace, err
	}
	final := e.Model.Status()
	log.Info().
		Int("moves", len(trace.Moves())).
		Int("pieces", final.NumPieces).
		Dur("elapsed", time.Since(start)).
		Msg("game over")
	return trace, nil
}
