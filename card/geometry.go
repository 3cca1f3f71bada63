package card

import "math/bits"

const (
	Squares = 25
	// BoardMask covers the 25 squares of a side's occupancy.
	BoardMask = 1<<Squares - 1
)

// colMasks keep shifted patterns from wrapping around the board edge; the
// index is the column of the origin square.
var colMasks = [5]uint32{
	0b00111_00111_00111_00111_00111,
	0b01111_01111_01111_01111_01111,
	0b11111_11111_11111_11111_11111,
	0b11110_11110_11110_11110_11110,
	0b11100_11100_11100_11100_11100,
}

var (
	shifted  [NumCards][Squares]uint32
	shiftedR [NumCards][Squares]uint32
)

func shift(m uint32, pos int) uint32 {
	return uint32(uint64(m)<<pos>>12) & colMasks[pos%5]
}

func init() {
	for c := range NumCards {
		m := patterns[c]
		r := MirrorMask(m)
		for pos := range Squares {
			shifted[c][pos] = shift(m, pos)
			shiftedR[c][pos] = shift(r, pos)
		}
	}
}

// Moves returns the squares reachable with card c from square from, in the
// orientation of the side holding the card.
func Moves(c Card, from int) uint32 {
	return shifted[c][from]
}

// Origins returns every square from which card c reaches square to. It is the
// pattern rotated by 180 degrees.
func Origins(c Card, to int) uint32 {
	return shiftedR[c][to]
}

// Mirror converts a square between the two sides' orientations.
func Mirror(sq int) int {
	return Squares - 1 - sq
}

// MirrorMask converts a 25-bit occupancy mask between orientations.
func MirrorMask(m uint32) uint32 {
	return bits.Reverse32(m) >> (32 - Squares)
}
