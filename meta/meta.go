// meta/meta.go
package meta

// DEFAULT_SEED seeds the random player when no seed is given.
const DEFAULT_SEED = 1

// MAX_CYCLES bounds a driver loop. A game on the standard board ends after
// at most 31 jumps.
const MAX_CYCLES = 64

// HOLD_CYCLES is the number of cycles fed after the game is over to check
// that the status holds steady.
const HOLD_CYCLES = 4

// DEFAULT_GAMES is the number of seeded games an experiment plays.
const DEFAULT_GAMES = 100

// DEFAULT_ADDR is the listen address of the reference-model server.
const DEFAULT_ADDR = ":8080"

// DEFAULT_OUT_DIR is where experiment records are written.
const DEFAULT_OUT_DIR = "experiments/out"
