package tablebase

import (
	"math/bits"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

const (
	// NumCardClasses is the number of ways to deal five cards 2/2/1.
	NumCardClasses = 30
	// NoPawn is the pawn class of a side without pawns.
	NoPawn = card.Squares
	// NumPawnClasses counts the 25 squares plus NoPawn.
	NumPawnClasses = card.Squares + 1

	// Size is the number of cells in a table.
	Size = NumCardClasses * card.Squares * card.Squares * NumPawnClasses * NumPawnClasses
)

// CardClass folds a deal down to 0..29. Only the ranks of the cards within
// the selection matter: the mover's pair gives 0..9 and the number of the
// opponent's cards ranked below the table card gives the tens.
func CardClass(sel card.Selection, sp card.Split) int {
	a, b := sp.Mine.Pair()
	return classByRanks(sel.Rank(a), sel.Rank(b), sel.Rank(sp.Table))
}

// classByRanks takes the ranks of the mover's cards (low first) and of the
// table card.
func classByRanks(a, b, table int) int {
	pair := a*card.SelectionSize + b
	if pair >= 10 {
		pair = 19 - pair
	}
	below := 0
	for r := range table {
		if r != a && r != b {
			below++
		}
	}
	return pair + 10*below
}

// PieceClass is the square of the only pawn, or NoPawn.
func PieceClass(pawns uint32) int {
	if pawns == 0 {
		return NoPawn
	}
	return bits.TrailingZeros32(pawns)
}

// PieceClassPairs counts the (mover pawn, opponent pawn) classes that do not
// put both pawns on the same square. The kings are left out of it.
func PieceClassPairs() int {
	n := 0
	for mine := range NumPawnClasses {
		for theirs := range NumPawnClasses {
			if mine != NoPawn && theirs != NoPawn && mine == card.Mirror(theirs) {
				continue
			}
			n++
		}
	}
	return n
}

// Index locates a cell. The opponent's squares are in the opponent's frame.
func Index(cls, myKing, otherKing, myPawn, otherPawn int) int {
	return (((cls*card.Squares+myKing)*card.Squares+otherKing)*NumPawnClasses+myPawn)*
		NumPawnClasses + otherPawn
}

type cell struct {
	cls               int
	myKing, otherKing int
	myPawn, otherPawn int
}

func decode(idx int) cell {
	var c cell
	c.otherPawn = idx % NumPawnClasses
	idx /= NumPawnClasses
	c.myPawn = idx % NumPawnClasses
	idx /= NumPawnClasses
	c.otherKing = idx % card.Squares
	idx /= card.Squares
	c.myKing = idx % card.Squares
	c.cls = idx / card.Squares
	return c
}

func (c cell) pieces() (my, other uint32) {
	my = 1 << c.myKing
	if c.myPawn != NoPawn {
		my |= 1 << c.myPawn
	}
	other = 1 << c.otherKing
	if c.otherPawn != NoPawn {
		other |= 1 << c.otherPawn
	}
	return my, other
}

// overlaps reports whether two pieces of the cell share a square.
func (c cell) overlaps() bool {
	my, other := c.pieces()
	n := 2
	if c.myPawn != NoPawn {
		n++
	}
	if c.otherPawn != NoPawn {
		n++
	}
	return bits.OnesCount32(my|card.MirrorMask(other)) != n
}

// valid cells are the ones a real game can be in with the mover to play.
// Positions already won by the mover are never reached.
func (c cell) valid() bool {
	return !c.overlaps() && c.myKing != game.OpponentTemple
}

// kingTaken reads the cell as the moment the mover's king was taken: an
// enemy piece stands on the king's square, the king is off the board and
// nothing else overlaps.
func (c cell) kingTaken() (my, other uint32, ok bool) {
	if c.myPawn == c.myKing || c.otherPawn == c.otherKing {
		return 0, 0, false
	}
	my, other = c.pieces()
	my &^= 1 << c.myKing
	theirs := card.MirrorMask(other)
	if theirs&(1<<c.myKing) == 0 || my&theirs != 0 {
		return 0, 0, false
	}
	return my, other, true
}
