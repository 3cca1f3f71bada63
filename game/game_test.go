package game

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/onitama/card"
)

func startGame() Game {
	return Start(card.Split{Mine: card.NewSet(0, 1), Other: card.NewSet(2, 3), Table: 4})
}

func TestStart(t *testing.T) {
	is := is.New(t)
	g := startGame()
	is.Equal(g.MyKing(), Temple)
	is.Equal(g.OtherKing(), Temple)
	is.Equal(g.CountPieces(), 4)
	is.Equal(g.CountOtherPieces(), 4)
	is.Equal(g.MyPawns(), uint32(0b11011))
	is.True(!g.IsLoss())
	is.True(!g.IsOtherLoss())
	is.NoErr(g.Validate())
}

func TestPlayFlipsSides(t *testing.T) {
	is := is.New(t)
	g := startGame()
	// ox takes a pawn one row forward
	next, win := g.Play(0, 5, 0)
	is.True(!win)
	is.Equal(next.OtherPieces(), uint32(0b11110|1<<5))
	is.Equal(next.MyPieces(), uint32(0b11111))
	is.Equal(next.MyCards(), card.NewSet(2, 3))
	is.Equal(next.OtherCards(), card.NewSet(1, 4))
	is.Equal(next.Table(), card.Card(0))
	is.Equal(next.Hash(), next.computeHash())
}

func TestPlayCapturesPawn(t *testing.T) {
	is := is.New(t)
	// mover king on 7, opponent pawn on our 12 (their 12) and king on their 0
	g := New(1<<7, 7, 1<<12|1<<0, 0, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	next, win := g.Play(7, 12, 0)
	is.True(!win)
	is.Equal(next.MyPieces(), uint32(1<<0))
	is.Equal(next.OtherKing(), 12)
	is.Equal(next.Hash(), next.computeHash())
}

func TestPlayCapturesKing(t *testing.T) {
	is := is.New(t)
	g := New(1<<7, 7, 1<<12, 12, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	next, win := g.Play(7, 12, 0)
	is.True(win)
	is.True(next.IsLoss())
	is.Equal(next.MyKing(), 12)
	is.Equal(next.Hash(), next.computeHash())
}

func TestPlayReachesTemple(t *testing.T) {
	is := is.New(t)
	g := New(1<<17, 17, 1<<0, 0, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	next, win := g.Play(17, OpponentTemple, 0)
	is.True(win)
	is.True(next.IsLoss())
	is.Equal(next.OtherKing(), OpponentTemple)
}

func TestUnplayInvertsPlay(t *testing.T) {
	g := New(1<<7|1<<3, 7, 1<<12|1<<0, 0, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	for _, tc := range []struct {
		from, to  int
		c         card.Card
		uncapture bool
	}{
		{7, 12, 0, true},
		{3, 8, 0, false},
		{7, 2, 0, false},
	} {
		next, _ := g.Play(tc.from, tc.to, tc.c)
		back := next.Unplay(tc.from, tc.to, 4, tc.uncapture)
		assert.Equal(t, g, back)
	}
}

func TestUnplayRestoresKing(t *testing.T) {
	is := is.New(t)
	g := New(1<<7, 7, 1<<12, 12, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	next, _ := g.Play(7, 12, 0)
	is.Equal(next.Unplay(7, 12, 4, true), g)
}

func TestFlip(t *testing.T) {
	is := is.New(t)
	g := New(1<<7, 7, 1<<12|1<<1, 1, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	f := g.Flip()
	is.Equal(f.MyKing(), 1)
	is.Equal(f.OtherKing(), 7)
	is.Equal(f.Hash(), f.computeHash())
	is.Equal(f.Flip(), g)
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	overlap := New(1<<12|1<<2, 2, 1<<12|1<<2, 2, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	is.Equal(overlap.Validate(), ErrOverlap)
	cards := New(1<<2, 2, 1<<2, 2, card.NewSet(0, 1), card.NewSet(1, 3), 4)
	is.Equal(cards.Validate(), ErrCardCount)
	over := New(1<<17, 17, 1<<0, 0, card.NewSet(0, 1), card.NewSet(2, 3), 4)
	next, _ := over.Play(17, OpponentTemple, 0)
	is.Equal(next.Validate(), ErrGameOver)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g := startGame()
	is.Equal(g.PieceAt(2), byte('K'))
	is.Equal(g.PieceAt(22), byte('k'))
	is.Equal(g.PieceAt(20), byte('p'))
	is.Equal(g.PieceAt(12), byte('.'))
	is.Equal(SquareName(2), "c1")
	sq, err := ParseSquare("c5")
	is.NoErr(err)
	is.Equal(sq, 22)
}
