package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pegsolitaire/communication/server"
	"pegsolitaire/game"
	"pegsolitaire/gamemaster"

	"github.com/rs/zerolog/log"
)

// Client drives a session of a remote server as a Device, so a remote model
// can be checked against the local one cycle by cycle.
type Client struct {
	serverURL string
	http      *http.Client
	id        string
}

// NewClient returns a client for the server at serverURL. The session is
// created on the first Reset.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      http.DefaultClient,
	}
}

// SessionID returns the id of the current session, empty before Reset.
func (c *Client) SessionID() string { return c.id }

// Create opens a new session and makes it current.
func (c *Client) Create(ctx context.Context) (server.SessionResponse, error) {
	var s server.SessionResponse
	if _, err := c.do(ctx, http.MethodPost, "/sessions", nil, &s, http.StatusCreated); err != nil {
		return s, err
	}
	c.id = s.ID
	log.Debug().Str("session", s.ID).Str("server", c.serverURL).Msg("remote session created")
	return s, nil
}

// Reset implements gamemaster.Device.
func (c *Client) Reset(ctx context.Context) (uint8, error) {
	if c.id == "" {
		s, err := c.Create(ctx)
		return s.Status, err
	}
	var s server.SessionResponse
	if _, err := c.do(ctx, http.MethodPost, "/sessions/"+c.id+"/reset", nil, &s, http.StatusOK); err != nil {
		return 0, err
	}
	return s.Status, nil
}

// Cycle implements gamemaster.Device. An input the server rejects as illegal
// returns the held status together with an error wrapping game.ErrIllegalMove.
func (c *Client) Cycle(ctx context.Context, input uint8) (uint8, error) {
	if c.id == "" {
		return 0, fmt.Errorf("cycle before reset")
	}
	var resp server.CycleResponse
	code, err := c.do(ctx, http.MethodPost, "/sessions/"+c.id+"/cycle", server.CycleRequest{Input: input}, &resp,
		http.StatusOK, http.StatusUnprocessableEntity)
	if err != nil {
		return 0, err
	}
	if code == http.StatusUnprocessableEntity {
		return resp.Status, fmt.Errorf("remote cycle %d: %w: %s", resp.Cycle, game.ErrIllegalMove, resp.Error)
	}
	return resp.Status, nil
}

// Close deletes the current session.
func (c *Client) Close(ctx context.Context) error {
	if c.id == "" {
		return nil
	}
	_, err := c.do(ctx, http.MethodDelete, "/sessions/"+c.id, nil, nil, http.StatusNoContent)
	c.id = ""
	return err
}

// do sends body as JSON and decodes the response into out when the status
// code is one of accept.
func (c *Client) do(ctx context.Context, method, path string, body, out any, accept ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	ok := false
	for _, code := range accept {
		ok = ok || resp.StatusCode == code
	}
	if !ok {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

var _ gamemaster.Device = (*Client)(nil)
