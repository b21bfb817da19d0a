package communication

import (
	"testing"

	"pegsolitaire/game"

	"github.com/stretchr/testify/require"
)

func TestPackMove(t *testing.T) {
	t.Run("bit layout", func(t *testing.T) {
		v, err := PackMove(game.NewMove(3, 1, game.Down))
		require.NoError(t, err)
		require.Equal(t, uint8(3|1<<3|1<<6), v)

		v, err = PackMove(game.NewMove(6, 5, game.Right))
		require.NoError(t, err)
		require.Equal(t, uint8(0b11_101_110), v)

		v, err = PackMove(game.NewMove(0, 0, game.Up))
		require.NoError(t, err)
		require.Zero(t, v)
	})

	t.Run("round trip for every in-range move", func(t *testing.T) {
		for y := 0; y < game.Size; y++ {
			for x := 0; x < game.Size; x++ {
				for _, d := range game.Directions {
					m := game.NewMove(x, y, d)
					v, err := PackMove(m)
					require.NoError(t, err)
					require.Equal(t, m, UnpackMove(v))
				}
			}
		}
	})

	t.Run("every byte decodes and re-encodes to itself", func(t *testing.T) {
		for v := 0; v < 256; v++ {
			got, err := PackMove(UnpackMove(uint8(v)))
			require.NoError(t, err)
			require.Equal(t, uint8(v), got)
		}
	})

	t.Run("rejects unencodable moves", func(t *testing.T) {
		for _, m := range []game.Move{
			game.NewMove(-1, 0, game.Up),
			game.NewMove(0, 8, game.Up),
			game.NewMove(2, 2, game.Direction(4)),
		} {
			_, err := PackMove(m)
			require.Error(t, err, "move %v", m)
		}
	})
}

func TestPackStatus(t *testing.T) {
	t.Run("bit layout", func(t *testing.T) {
		v, err := PackStatus(Status{NumPieces: 32})
		require.NoError(t, err)
		require.Equal(t, uint8(32), v)

		v, err = PackStatus(Status{NumPieces: 5, GameOver: true})
		require.NoError(t, err)
		require.Equal(t, uint8(5|1<<6), v)
	})

	t.Run("round trip", func(t *testing.T) {
		for n := 0; n <= game.NumCells; n++ {
			for _, over := range []bool{false, true} {
				s := Status{NumPieces: n, GameOver: over}
				v, err := PackStatus(s)
				require.NoError(t, err)
				require.Equal(t, s, UnpackStatus(v))
			}
		}
	})

	t.Run("ignores bit 7", func(t *testing.T) {
		require.Equal(t, Status{NumPieces: 3, GameOver: true}, UnpackStatus(0x80|0x40|3))
	})

	t.Run("rejects counts that do not fit", func(t *testing.T) {
		_, err := PackStatus(Status{NumPieces: 64})
		require.Error(t, err)
		_, err = PackStatus(Status{NumPieces: -1})
		require.Error(t, err)
		require.Panics(t, func() { MustPackStatus(Status{NumPieces: 100}) })
	})
}

func TestStatusOf(t *testing.T) {
	b := game.NewBoard()
	require.Equal(t, Status{NumPieces: 32}, StatusOf(b))

	end, err := game.BoardFromBits(game.BB(game.Center))
	require.NoError(t, err)
	require.Equal(t, Status{NumPieces: 1, GameOver: true}, StatusOf(end))
}
