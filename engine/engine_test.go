package engine

import (
	"context"
	"errors"
	"testing"

	"pegsolitaire/communication"
	"pegsolitaire/game"
	"pegsolitaire/gamemaster"
	"pegsolitaire/player"

	"github.com/stretchr/testify/require"
)

func requireWellFormed(t *testing.T, trace Trace) {
	t.Helper()
	require.NotEmpty(t, trace)
	pieces := game.NumCells - 1
	for i, step := range trace {
		require.Equal(t, i+1, step.Cycle)
		require.Equal(t, communication.MustPackStatus(step.Status), step.Output)
		if step.Hold {
			require.Equal(t, trace[i-1].Status, step.Status, "status must hold after game over")
			continue
		}
		pieces--
		require.Equal(t, pieces, step.Status.NumPieces, "cycle %d should remove one piece", step.Cycle)
		input, err := communication.PackMove(step.Move)
		require.NoError(t, err)
		require.Equal(t, input, step.Input)
		last := i == len(trace)-1 || trace[i+1].Hold
		require.Equal(t, last, step.Status.GameOver, "game_over only on the last move cycle")
	}
}

func TestLocalEngine(t *testing.T) {
	t.Run("plays to termination", func(t *testing.T) {
		e := LocalEngine(player.FirstPlayer{})
		trace, err := e.Run(context.Background())
		require.NoError(t, err)
		requireWellFormed(t, trace)
		require.True(t, trace.Final().GameOver)
		require.Equal(t, game.NewMove(3, 1, game.Down), trace[0].Move)
		require.Equal(t, uint8(31), trace[0].Output)
		require.True(t, e.Model.Board().IsGameOver())
	})

	t.Run("seeded random play is reproducible", func(t *testing.T) {
		first, err := LocalEngine(player.NewRandomPlayer(42)).Run(context.Background())
		require.NoError(t, err)
		second, err := LocalEngine(player.NewRandomPlayer(42)).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, first, second)
		requireWellFormed(t, first)
	})

	t.Run("seed 1 plays the recorded game", func(t *testing.T) {
		trace, err := LocalEngine(player.NewRandomPlayer(1)).Run(context.Background())
		require.NoError(t, err)
		requireWellFormed(t, trace)

		inputs := make([]uint8, len(trace))
		for i, step := range trace {
			inputs[i] = step.Input
		}
		require.Equal(t, []uint8{
			43, 225, 91, 81, 50, 225, 157, 44, 180, 155, 43, 83,
			84, 74, 164, 67, 150, 34, 147, 76, 81, 224, 38, 80,
		}, inputs)
		require.Equal(t, communication.Status{NumPieces: 8, GameOver: true}, *trace.Final())
		require.Equal(t, uint8(72), trace[len(trace)-1].Output)
	})

	t.Run("starts from the initial board after earlier play", func(t *testing.T) {
		e := LocalEngine(player.FirstPlayer{})
		_, err := e.Model.Play(game.NewMove(3, 1, game.Down))
		require.NoError(t, err)
		trace, err := e.Run(context.Background())
		require.NoError(t, err)
		requireWellFormed(t, trace)
		require.Equal(t, game.NewMove(3, 1, game.Down), trace[0].Move)
	})

	t.Run("replaying a trace reproduces it", func(t *testing.T) {
		golden, err := LocalEngine(player.NewRandomPlayer(5)).Run(context.Background())
		require.NoError(t, err)
		replayed, err := LocalEngine(player.NewReplayPlayer(golden.Moves())).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, golden, replayed)
	})

	t.Run("hold cycles repeat the final status", func(t *testing.T) {
		trace, err := LocalEngine(player.FirstPlayer{}, WithHoldCycles(3)).Run(context.Background())
		require.NoError(t, err)
		requireWellFormed(t, trace)
		holds := trace[len(trace)-3:]
		for _, step := range holds {
			require.True(t, step.Hold)
		}
		require.Len(t, trace.Moves(), len(trace)-3)
	})

	t.Run("stops at the cycle limit", func(t *testing.T) {
		trace, err := LocalEngine(player.FirstPlayer{}, WithMaxCycles(3)).Run(context.Background())
		require.ErrorIs(t, err, ErrCycleLimit)
		require.Len(t, trace, 3)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := LocalEngine(player.FirstPlayer{}).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("surfaces an illegal selection", func(t *testing.T) {
		_, err := LocalEngine(player.NewReplayPlayer([]game.Move{game.NewMove(0, 2, game.Right)})).Run(context.Background())
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("requires a selector", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(nil) })
	})
}

func TestTraceFinal(t *testing.T) {
	require.Nil(t, Trace(nil).Final())
}

// faultyDevice wraps the reference model and corrupts one cycle's output.
type faultyDevice struct {
	inner  *gamemaster.Model
	failAt int
	flip   uint8
	err    error
	reset  uint8
}

func (d *faultyDevice) Reset(ctx context.Context) (uint8, error) {
	v, err := d.inner.Reset(ctx)
	return v ^ d.reset, err
}

func (d *faultyDevice) Cycle(ctx context.Context, input uint8) (uint8, error) {
	v, err := d.inner.Cycle(ctx, input)
	if d.inner.Cycles() == d.failAt {
		if d.err != nil {
			return 0, d.err
		}
		v ^= d.flip
	}
	return v, err
}

// stickyDevice keeps applying moves after the game is over instead of
// holding its status.
type stickyDevice struct {
	board *game.Board
}

func (d *stickyDevice) Reset(ctx context.Context) (uint8, error) {
	d.board = game.NewBoard()
	return communication.MustPackStatus(communication.StatusOf(d.board)), nil
}

func (d *stickyDevice) Cycle(ctx context.Context, input uint8) (uint8, error) {
	s := communication.StatusOf(d.board)
	if err := d.board.Apply(communication.UnpackMove(input)); err != nil && s.GameOver {
		s.NumPieces--
	} else {
		s = communication.StatusOf(d.board)
	}
	return communication.MustPackStatus(s), nil
}

func TestCheckedEngine(t *testing.T) {
	t.Run("reference model matches itself", func(t *testing.T) {
		e := CheckedEngine(gamemaster.NewModel(), player.NewRandomPlayer(3))
		trace, err := e.Run(context.Background())
		require.NoError(t, err)
		requireWellFormed(t, trace)
		require.True(t, trace[len(trace)-1].Hold)
	})

	t.Run("reruns from a single reset of both sides", func(t *testing.T) {
		e := CheckedEngine(gamemaster.NewModel(), player.NewRandomPlayer(1), WithHoldCycles(0))
		first, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, e.Model.Status().GameOver)

		e.Selector = player.NewRandomPlayer(1)
		second, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, len(first), e.Model.Cycles())
	})

	t.Run("reports the first diverging cycle", func(t *testing.T) {
		dut := &faultyDevice{inner: gamemaster.NewModel(), failAt: 2, flip: 0x01}
		trace, err := CheckedEngine(dut, player.FirstPlayer{}).Run(context.Background())

		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch), "expected a mismatch, got %v", err)
		require.Equal(t, 2, mismatch.Cycle)
		require.Equal(t, uint8(30), mismatch.Want)
		require.Equal(t, uint8(31), mismatch.Got)
		require.Equal(t, trace[1].Input, mismatch.Input)
		require.Contains(t, mismatch.Error(), "cycle 2")
	})

	t.Run("reports a bad reset status", func(t *testing.T) {
		dut := &faultyDevice{inner: gamemaster.NewModel(), reset: 0x40}
		_, err := CheckedEngine(dut, player.FirstPlayer{}).Run(context.Background())
		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch))
		require.Zero(t, mismatch.Cycle)
	})

	t.Run("detects a device that does not hold after game over", func(t *testing.T) {
		_, err := CheckedEngine(&stickyDevice{}, player.FirstPlayer{}).Run(context.Background())
		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch), "expected a mismatch, got %v", err)
		require.True(t, communication.UnpackStatus(mismatch.Want).GameOver)
	})

	t.Run("propagates device errors", func(t *testing.T) {
		boom := errors.New("simulator crashed")
		dut := &faultyDevice{inner: gamemaster.NewModel(), failAt: 1, err: boom}
		_, err := CheckedEngine(dut, player.FirstPlayer{}).Run(context.Background())
		require.ErrorIs(t, err, boom)
	})
}
