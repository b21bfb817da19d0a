package game

import "math/bits"

// Bitboard is a set of grid cells packed one bit per cell, bit index y*Size+x.
type Bitboard uint64

func index(c Cell) uint {
	return uint(c.Y*Size + c.X)
}

// BB returns the bitboard holding only c. Cells outside the grid map to the
// empty set.
func BB(c Cell) Bitboard {
	if c.X < 0 || c.X >= Size || c.Y < 0 || c.Y >= Size {
		return 0
	}
	return 1 << index(c)
}

func (b Bitboard) Empty() bool { return b == 0 }

func (b Bitboard) Has(c Cell) bool { return b&BB(c) != 0 }

func (b Bitboard) Add(c Cell) Bitboard { return b | BB(c) }

func (b Bitboard) Remove(c Cell) Bitboard { return b &^ BB(c) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Iter calls fn for every cell in b, lowest bit first, which is the
// canonical y-then-x order.
func (b Bitboard) Iter(fn func(Cell)) {
	bb := uint64(b)
	for bb != 0 {
		i := bits.TrailingZeros64(bb)
		fn(Cell{X: i % Size, Y: i / Size})
		bb &= bb - 1
	}
}
