package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"pegsolitaire/communication"
	"pegsolitaire/communication/server"
	"pegsolitaire/engine"
	"pegsolitaire/game"
	"pegsolitaire/player"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	ts := httptest.NewServer(server.NewServer().Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL + "/")
}

func TestClientDevice(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	_, err := c.Cycle(ctx, 0)
	require.Error(t, err)

	status, err := c.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(32), status)
	id := c.SessionID()
	require.NotEmpty(t, id)

	input, err := communication.PackMove(game.NewMove(3, 1, game.Down))
	require.NoError(t, err)
	status, err = c.Cycle(ctx, input)
	require.NoError(t, err)
	require.Equal(t, uint8(31), status)

	status, err = c.Cycle(ctx, input)
	require.ErrorIs(t, err, game.ErrIllegalMove)
	require.Equal(t, uint8(31), status)

	status, err = c.Reset(ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(32), status)
	require.Equal(t, id, c.SessionID())

	require.NoError(t, c.Close(ctx))
	require.Empty(t, c.SessionID())
}

func TestCheckedAgainstServer(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42} {
		c := newClient(t)
		trace, err := engine.CheckedEngine(c, player.NewRandomPlayer(seed)).Run(context.Background())
		require.NoError(t, err, "seed %d", seed)
		require.True(t, trace.Final().GameOver)

		// a second run reuses the session through reset
		_, err = engine.CheckedEngine(c, player.NewRandomPlayer(seed)).Run(context.Background())
		require.NoError(t, err)
	}
}

func TestClientCanceled(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Reset(ctx)
	require.True(t, errors.Is(err, context.Canceled))
}
