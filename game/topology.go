package game

// Size is the side length of the square grid the board is inscribed in.
const Size = 7

// corner is the side length of the square blocks cut from each grid corner.
const corner = 2

// NumCells is the number of playable cells on the standard cross-shaped board.
const NumCells = 33

// Cell is a coordinate pair on the grid.
type Cell struct {
	X int
	Y int
}

// Center is the cell left empty in the starting configuration.
var Center = Cell{X: Size / 2, Y: Size / 2}

// Exists reports whether (x, y) is a playable cell. It is defined for every
// integer pair and returns false outside the grid.
func Exists(x, y int) bool {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	inCornerColumn := x < corner || x >= Size-corner
	inCornerRow := y < corner || y >= Size-corner
	return !(inCornerColumn && inCornerRow)
}

// Exists reports whether the cell is playable.
func (c Cell) Exists() bool {
	return Exists(c.X, c.Y)
}

// Step returns the cell n steps away in direction d.
func (c Cell) Step(d Direction, n int) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + n*dx, Y: c.Y + n*dy}
}

// Cells lists every playable cell in canonical order: increasing y, then x.
func Cells() []Cell {
	cells := make([]Cell, 0, NumCells)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if Exists(x, y) {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// TopologyMask has exactly one bit set per playable cell.
var TopologyMask = topologyMask()

func topologyMask() Bitboard {
	var mask Bitboard
	for _, c := range Cells() {
		mask = mask.Add(c)
	}
	return mask
}
