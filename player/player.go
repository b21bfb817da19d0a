package player

import (
	"errors"
	"fmt"

	"pegsolitaire/game"
	"pegsolitaire/utils"

	"golang.org/x/exp/rand"
)

// ErrNoMoves is returned by a Selector asked to choose on a finished board.
// It signals the end of the game, not a failure.
var ErrNoMoves = errors.New("no legal moves")

// Selector picks the next move for a position. Implementations own no board
// state and must not mutate the state they inspect.
type Selector interface {
	Select(state game.State) (game.Move, error)
}

// RandomPlayer picks uniformly among the legal moves using a seeded source,
// so the same seed always plays the same game.
type RandomPlayer struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandomPlayer returns a RandomPlayer seeded with seed.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the player was created with.
func (p *RandomPlayer) Seed() uint64 { return p.seed }

func (p *RandomPlayer) Select(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// ReplayPlayer plays a fixed script of moves, e.g. one recorded from an
// earlier run. Each scripted move must be legal when its turn comes.
type ReplayPlayer struct {
	script []game.Move
	next   int
}

// NewReplayPlayer returns a ReplayPlayer for script.
func NewReplayPlayer(script []game.Move) *ReplayPlayer {
	s := make([]game.Move, len(script))
	copy(s, script)
	return &ReplayPlayer{script: s}
}

func (p *ReplayPlayer) Select(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	if p.next >= len(p.script) {
		return game.Move{}, fmt.Errorf("script exhausted after %d moves with %d legal moves left", p.next, len(moves))
	}
	m := p.script[p.next]
	if utils.FindIndex(moves, m) < 0 {
		return game.Move{}, fmt.Errorf("scripted move %d %s: %w", p.next, m, &game.IllegalMoveError{Move: m, Reason: errNotInMoveSet})
	}
	p.next++
	return m, nil
}

// Remaining returns the number of scripted moves not yet played.
func (p *ReplayPlayer) Remaining() int { return len(p.script) - p.next }

var errNotInMoveSet = errors.New("not among the legal moves")

// FirstPlayer always picks the first legal move in canonical order.
type FirstPlayer struct{}

func (FirstPlayer) Select(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return moves[0], nil
}
