package zobrist

import (
	"math/bits"

	"lukechampine.com/frand"

	"github.com/domino14/onitama/card"
)

const bignum = 1<<63 - 2

// Zobrist hashes a position as side(mover) ^ rotl32(side(opponent)) ^ table.
// Switching the side to move is then a 32-bit rotation, and the table keys
// are built so that the rotation leaves them alone.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	pawns    [card.Squares]uint64
	kings    [card.Squares]uint64
	deadKing uint64
	hand     [card.NumCards]uint64
	table    [card.NumCards]uint64
}

// Move is everything AddMove needs to know about a forward move. Squares are
// in the mover's frame, except Captured which is in the opponent's frame.
type Move struct {
	From, To     int
	King         bool
	Captured     int // -1 when nothing was taken
	CapturedKing bool
	Card         card.Card
	Table        card.Card
}

func (z *Zobrist) Initialize() {
	for i := range card.Squares {
		z.pawns[i] = frand.Uint64n(bignum) + 1
		z.kings[i] = frand.Uint64n(bignum) + 1
	}
	z.deadKing = frand.Uint64n(bignum) + 1
	for i := range card.NumCards {
		z.hand[i] = frand.Uint64n(bignum) + 1
		half := frand.Uint64n(1<<32-1) + 1
		z.table[i] = half | half<<32
	}
}

// Flip returns the hash of the same position with the other side to move.
func Flip(h uint64) uint64 {
	return bits.RotateLeft64(h, 32)
}

// SideHash hashes one side. pieces is the occupancy of all of the side's
// pieces, king included; a king whose square is missing from it is captured.
func (z *Zobrist) SideHash(pieces uint32, king int, cards card.Set) uint64 {
	key := z.kings[king]
	if pieces&(1<<king) == 0 {
		key ^= z.deadKing
	}
	for p := pieces &^ (1 << king); p != 0; p &= p - 1 {
		key ^= z.pawns[bits.TrailingZeros32(p)]
	}
	for c := range cards.All() {
		key ^= z.hand[c]
	}
	return key
}

func (z *Zobrist) Hash(myPieces uint32, myKing int, myCards card.Set,
	otherPieces uint32, otherKing int, otherCards card.Set, table card.Card) uint64 {

	return z.SideHash(myPieces, myKing, myCards) ^
		Flip(z.SideHash(otherPieces, otherKing, otherCards)) ^
		z.table[table]
}

// AddMove returns the hash of the position after m, seen from the new side
// to move.
func (z *Zobrist) AddMove(h uint64, m Move) uint64 {
	var mover uint64
	if m.King {
		mover = z.kings[m.From] ^ z.kings[m.To]
	} else {
		mover = z.pawns[m.From] ^ z.pawns[m.To]
	}
	mover ^= z.hand[m.Card] ^ z.hand[m.Table]

	h = Flip(h) ^ Flip(mover)
	if m.Captured >= 0 {
		if m.CapturedKing {
			h ^= z.deadKing
		} else {
			h ^= z.pawns[m.Captured]
		}
	}
	return h ^ z.table[m.Table] ^ z.table[m.Card]
}
