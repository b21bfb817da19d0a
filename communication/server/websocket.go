package server

import (
	"errors"
	"net/http"

	"pegsolitaire/game"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame is a message sent by a websocket client. Type is one of "cycle",
// "reset" or "ping".
type Frame struct {
	Type  string `json:"type"`
	Input uint8  `json:"input"`
}

// Reply is a message sent back to a websocket client. Type is "cycle",
// "reset", "pong" or "error". Cycle replies for an illegal input carry both
// the held status and Error.
type Reply struct {
	Type    string           `json:"type"`
	Cycle   *CycleResponse   `json:"cycle,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type wsClient struct {
	conn     *websocket.Conn
	server   *Server
	id       string
	sendChan chan Reply
	// done is closed when writePump stops; replies are dropped after that.
	done     chan struct{}
}

// handleWebSocket streams cycles for one session. Frames are handled in
// arrival order so the session sees the same sequence as the client sent.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.lookup(id); err != nil {
		writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("websocket upgrade failed")
		return
	}
	log.Debug().Str("session", id).Msg("websocket connected")
	client := &wsClient{conn: conn, server: s, id: id, sendChan: make(chan Reply, 256), done: make(chan struct{})}
	go client.writePump()
	client.readPump()
}

func (c *wsClient) writePump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Str("session", c.id).Msg("websocket write failed")
			return
		}
	}
}

func (c *wsClient) readPump() {
	defer func() {
		close(c.sendChan)
		c.conn.Close()
		log.Debug().Str("session", c.id).Msg("websocket closed")
	}()
	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		if !c.send(c.handle(frame)) {
			return
		}
	}
}

// send queues r for writePump. It reports false once writePump has stopped.
func (c *wsClient) send(r Reply) bool {
	select {
	case c.sendChan <- r:
		return true
	case <-c.done:
		return false
	}
}

func (c *wsClient) handle(frame Frame) Reply {
	switch frame.Type {
	case "cycle":
		resp, err := c.server.Cycle(c.id, frame.Input)
		if err != nil && !errors.Is(err, game.ErrIllegalMove) {
			return Reply{Type: "error", Error: err.Error()}
		}
		return Reply{Type: "cycle", Cycle: &resp, Error: resp.Error}
	case "reset":
		resp, err := c.server.Reset(c.id)
		if err != nil {
			return Reply{Type: "error", Error: err.Error()}
		}
		return Reply{Type: "reset", Session: &resp}
	case "ping":
		return Reply{Type: "pong"}
	default:
		return Reply{Type: "error", Error: "unknown frame type " + frame.Type}
	}
}
