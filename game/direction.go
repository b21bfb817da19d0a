package game

import "fmt"

// Direction is the direction of a jump. The ordinals are part of the packed
// move encoding and must not be reordered.
type Direction uint8

const (
	Up    Direction = iota // 0: (0, -1)
	Down                   // 1: (0, +1)
	Left                   // 2: (-1, 0)
	Right                  // 3: (+1, 0)
)

// NumDirections is the number of jump directions.
const NumDirections = 4

// Directions lists every direction in ordinal order.
var Directions = [NumDirections]Direction{Up, Down, Left, Right}

var deltas = [NumDirections][2]int{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

var directionNames = [NumDirections]string{"up", "down", "left", "right"}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d < NumDirections
}

// Delta returns the unit vector of d. An invalid direction has a zero vector.
func (d Direction) Delta() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection converts a direction name back to its value.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
