package tablebase

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/onitama/card"
)

func classesOf(sel card.Selection) map[int]card.Split {
	classes := map[int]card.Split{}
	for _, sp := range sel.Splits() {
		classes[CardClass(sel, sp)] = sp
	}
	return classes
}

func TestCardClassIsABijection(t *testing.T) {
	is := is.New(t)
	a, err := card.ParseSelection("ox,boar,horse,elephant,crab")
	is.NoErr(err)
	b, err := card.ParseSelection("tiger,crane,dragon,eel,cobra")
	is.NoErr(err)

	ca, cb := classesOf(a), classesOf(b)
	is.Equal(len(ca), NumCardClasses)
	is.Equal(len(cb), NumCardClasses)
	for cls, sp := range ca {
		is.True(cls >= 0 && cls < NumCardClasses)
		other, ok := cb[cls]
		is.True(ok)
		// the same class means the same ranks in both selections
		al, ah := sp.Mine.Pair()
		bl, bh := other.Mine.Pair()
		is.Equal(a.Rank(al), b.Rank(bl))
		is.Equal(a.Rank(ah), b.Rank(bh))
		is.Equal(a.Rank(sp.Table), b.Rank(other.Table))
	}
}

func TestPieceClassPairs(t *testing.T) {
	is := is.New(t)
	is.Equal(PieceClassPairs(), 651)
	is.Equal(PieceClass(0), NoPawn)
	is.Equal(PieceClass(1<<17), 17)
}

func TestIndexRoundTrip(t *testing.T) {
	is := is.New(t)
	is.Equal(Size, 12675000)
	for _, c := range []cell{
		{0, 0, 0, 0, 0},
		{29, 24, 24, NoPawn, NoPawn},
		{13, 2, 22, 7, NoPawn},
	} {
		idx := Index(c.cls, c.myKing, c.otherKing, c.myPawn, c.otherPawn)
		is.True(idx >= 0 && idx < Size)
		is.Equal(decode(idx), c)
	}
}

func TestCellValidity(t *testing.T) {
	testcases := []struct {
		c     cell
		valid bool
	}{
		{cell{0, 2, 2, NoPawn, NoPawn}, true},
		// kings on the same square
		{cell{0, 12, 12, NoPawn, NoPawn}, false},
		{cell{0, 2, 2, 2, NoPawn}, false},
		{cell{0, 2, 2, 7, 17}, false},
		{cell{0, 2, 2, 7, 16}, true},
		// the mover's king already stands on the opponent's temple
		{cell{0, 22, 7, NoPawn, NoPawn}, false},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.valid, tc.c.valid(), "%+v", tc.c)
	}
}

func TestKingTaken(t *testing.T) {
	is := is.New(t)
	// the opponent's king stands on the mover's king square
	my, other, ok := cell{0, 7, 17, NoPawn, NoPawn}.kingTaken()
	is.True(ok)
	is.Equal(my, uint32(0))
	is.Equal(other, uint32(1<<17))

	_, _, ok = cell{0, 7, 18, NoPawn, NoPawn}.kingTaken()
	is.True(!ok)
	// the mover's pawn would share a square with the opponent's pawn
	_, _, ok = cell{0, 7, 17, 12, 12}.kingTaken()
	is.True(!ok)
}
