package player

import (
	"testing"

	"pegsolitaire/game"

	"github.com/stretchr/testify/require"
)

func playOut(t *testing.T, s Selector) []game.Move {
	t.Helper()
	b := game.NewBoard()
	var played []game.Move
	for {
		m, err := s.Select(b)
		if err == ErrNoMoves {
			break
		}
		require.NoError(t, err)
		require.NoError(t, b.Apply(m))
		played = append(played, m)
	}
	require.True(t, b.IsGameOver())
	return played
}

func TestRandomPlayer(t *testing.T) {
	t.Run("only selects legal moves", func(t *testing.T) {
		p := NewRandomPlayer(42)
		b := game.NewBoard()
		for !b.IsGameOver() {
			m, err := p.Select(b)
			require.NoError(t, err)
			require.True(t, b.IsLegal(m), "selected move %v must be legal", m)
			require.NoError(t, b.Apply(m))
		}
	})

	t.Run("same seed plays the same game", func(t *testing.T) {
		first := playOut(t, NewRandomPlayer(7))
		second := playOut(t, NewRandomPlayer(7))
		require.Equal(t, first, second)
		require.Equal(t, uint64(7), NewRandomPlayer(7).Seed())
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := game.NewBoard()
		before := b.Bits()
		_, err := NewRandomPlayer(1).Select(b)
		require.NoError(t, err)
		require.Equal(t, before, b.Bits())
	})

	t.Run("reports no moves on a finished board", func(t *testing.T) {
		b, err := game.BoardFromBits(game.BB(game.Center))
		require.NoError(t, err)
		_, err = NewRandomPlayer(1).Select(b)
		require.ErrorIs(t, err, ErrNoMoves)
	})
}

func TestReplayPlayer(t *testing.T) {
	t.Run("replays a recorded game", func(t *testing.T) {
		recorded := playOut(t, NewRandomPlayer(99))
		replay := NewReplayPlayer(recorded)
		require.Equal(t, recorded, playOut(t, replay))
		require.Zero(t, replay.Remaining())
	})

	t.Run("rejects a scripted move that is not legal", func(t *testing.T) {
		replay := NewReplayPlayer([]game.Move{game.NewMove(3, 3, game.Up)})
		_, err := replay.Select(game.NewBoard())
		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Equal(t, 1, replay.Remaining())
	})

	t.Run("fails when the script runs out early", func(t *testing.T) {
		replay := NewReplayPlayer(nil)
		_, err := replay.Select(game.NewBoard())
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNoMoves)
	})
}

func TestFirstPlayer(t *testing.T) {
	m, err := FirstPlayer{}.Select(game.NewBoard())
	require.NoError(t, err)
	require.Equal(t, game.NewMove(3, 1, game.Down), m)
}
