package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"pegsolitaire/communication"
	"pegsolitaire/game"
	"pegsolitaire/gamemaster"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("session not found")

// session owns one reference model. Its mutex serialises cycles so a model
// is only ever driven by one request at a time.
type session struct {
	mu    sync.Mutex
	model *gamemaster.Model
}

// Server exposes reference model sessions to an external simulation driver.
type Server struct {
	mutex    sync.RWMutex
	sessions map[string]*session
}

// NewServer returns a server without sessions.
func NewServer() *Server {
	return &Server{sessions: make(map[string]*session)}
}

// Handler wires the routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Post("/sessions", s.handleCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.handleGet)
		r.Delete("/", s.handleDelete)
		r.Post("/reset", s.handleReset)
		r.Post("/cycle", s.handleCycle)
		r.Get("/moves", s.handleMoves)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// CycleRequest is the body of a cycle request.
type CycleRequest struct {
	Input uint8 `json:"input"`
}

// CycleResponse reports the status after one cycle.
type CycleResponse struct {
	Cycle     int    `json:"cycle"`
	Status    uint8  `json:"status"`
	NumPieces int    `json:"num_pieces"`
	GameOver  bool   `json:"game_over"`
	Ignored   bool   `json:"ignored,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SessionResponse describes a session.
type SessionResponse struct {
	ID        string `json:"id"`
	Cycle     int    `json:"cycle"`
	Status    uint8  `json:"status"`
	NumPieces int    `json:"num_pieces"`
	GameOver  bool   `json:"game_over"`
	Board     uint64 `json:"board"`
}

// MoveResponse is one legal move with its packed input.
type MoveResponse struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Dir   string `json:"dir"`
	Input uint8  `json:"input"`
}

// Create registers a new session and returns its id.
func (s *Server) Create() string {
	id := uuid.NewString()
	s.mutex.Lock()
	s.sessions[id] = &session{model: gamemaster.NewModel()}
	s.mutex.Unlock()
	log.Info().Str("session", id).Msg("session created")
	return id
}

// Delete drops session id.
func (s *Server) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	log.Info().Str("session", id).Msg("session deleted")
	return nil
}

func (s *Server) lookup(id string) (*session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Cycle runs one cycle on session id. An illegal input is reported in both
// the response and the error; the response then carries the held status.
func (s *Server) Cycle(id string, input uint8) (CycleResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return CycleResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	u, err := sess.model.Step(input)
	resp := CycleResponse{
		Cycle:     u.Cycle,
		Status:    communication.MustPackStatus(u.Status),
		NumPieces: u.Status.NumPieces,
		GameOver:  u.Status.GameOver,
		Ignored:   u.Ignored,
	}
	if err != nil {
		resp.Error = err.Error()
		log.Warn().Str("session", id).Int("cycle", u.Cycle).Err(err).Msg("illegal input")
	}
	return resp, err
}

// Reset puts session id back in the starting configuration.
func (s *Server) Reset(id string) (SessionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.model = gamemaster.NewModel()
	return describe(id, sess.model), nil
}

// Describe returns the current state of session id.
func (s *Server) Describe(id string) (SessionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return describe(id, sess.model), nil
}

func describe(id string, m *gamemaster.Model) SessionResponse {
	st := m.Status()
	return SessionResponse{
		ID:        id,
		Cycle:     m.Cycles(),
		Status:    communication.MustPackStatus(st),
		NumPieces: st.NumPieces,
		GameOver:  st.GameOver,
		Board:     uint64(m.Board().Bits()),
	}
}

// Moves lists the legal moves of session id in canonical order.
func (s *Server) Moves(id string) ([]MoveResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	board := sess.model.Board()
	sess.mu.Unlock()

	moves := board.LegalMoves()
	out := make([]MoveResponse, 0, len(moves))
	for _, m := range moves {
		input, err := communication.PackMove(m)
		if err != nil {
			return nil, err
		}
		out = append(out, MoveResponse{X: m.X, Y: m.Y, Dir: m.Dir.String(), Input: input})
	}
	return out, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id := s.Create()
	resp, err := s.Describe(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Describe(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Reset(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	var req CycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := s.Cycle(chi.URLParam(r, "id"), req.Input)
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case err != nil:
		writeError(w, err)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := s.Moves(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moves)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
