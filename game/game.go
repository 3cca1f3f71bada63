// Package game holds the Position type: a packed, immutable snapshot of the
// board, the hands and the table card, always seen from the side to move.
package game

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/zobrist"
)

const (
	// Temple is the mover's home square, in the mover's frame.
	Temple = 2
	// OpponentTemple is the opponent's home square, in the mover's frame.
	OpponentTemple = card.Squares - 1 - Temple

	kingShift = card.Squares
	// MaxPawns is the number of pawns each side starts with.
	MaxPawns = 4
)

var (
	ErrOverlap     = errors.New("two pieces share a square")
	ErrKingMissing = errors.New("a king is missing from the board")
	ErrCardCount   = errors.New("cards are not dealt 2/2/1")
	ErrGameOver    = errors.New("position is already decided")
)

var keys zobrist.Zobrist

func init() {
	keys.Initialize()
}

// Game is a position from the point of view of the side to move. Each side
// is packed into a uint32 in its own orientation: bits 0-24 are the
// occupancy of all its pieces (king included) and bits 25-29 the king
// square. Square s of one side is square 24-s of the other. A captured
// king keeps its square but loses its occupancy bit.
type Game struct {
	my, other  uint32
	myCards    card.Set
	otherCards card.Set
	table      card.Card
	hash       uint64
}

func pack(pieces uint32, king int) uint32 {
	return pieces&card.BoardMask | uint32(king)<<kingShift
}

// New builds a position. Pieces masks include the king square unless that
// king has been captured. New does not check the position, see Validate.
func New(myPieces uint32, myKing int, otherPieces uint32, otherKing int,
	myCards, otherCards card.Set, table card.Card) Game {

	g := Game{
		my:         pack(myPieces, myKing),
		other:      pack(otherPieces, otherKing),
		myCards:    myCards,
		otherCards: otherCards,
		table:      table,
	}
	g.hash = g.computeHash()
	return g
}

// Start returns the opening position for a deal: five pieces on each home
// row with the kings on the temples.
func Start(sp card.Split) Game {
	const homeRow = 0b11111
	return New(homeRow, Temple, homeRow, Temple, sp.Mine, sp.Other, sp.Table)
}

func (g Game) computeHash() uint64 {
	return keys.Hash(g.MyPieces(), g.MyKing(), g.myCards,
		g.OtherPieces(), g.OtherKing(), g.otherCards, g.table)
}

// MyPieces returns the occupancy of all the mover's pieces, king included.
func (g Game) MyPieces() uint32 {
	return g.my & card.BoardMask
}

func (g Game) MyKing() int {
	return int(g.my >> kingShift)
}

func (g Game) MyPawns() uint32 {
	return g.MyPieces() &^ (1 << g.MyKing())
}

// OtherPieces is in the opponent's frame.
func (g Game) OtherPieces() uint32 {
	return g.other & card.BoardMask
}

func (g Game) OtherKing() int {
	return int(g.other >> kingShift)
}

func (g Game) OtherPawns() uint32 {
	return g.OtherPieces() &^ (1 << g.OtherKing())
}

func (g Game) MyCards() card.Set    { return g.myCards }
func (g Game) OtherCards() card.Set { return g.otherCards }
func (g Game) Table() card.Card     { return g.table }
func (g Game) Hash() uint64         { return g.hash }

// Cards returns every card in play.
func (g Game) Cards() card.Set {
	return g.myCards | g.otherCards | card.NewSet(g.table)
}

// Occupied returns the squares taken by either side, in the mover's frame.
func (g Game) Occupied() uint32 {
	return g.MyPieces() | card.MirrorMask(g.OtherPieces())
}

func (g Game) myKingAlive() bool {
	return g.my&(1<<g.MyKing()) != 0
}

func (g Game) otherKingAlive() bool {
	return g.other&(1<<g.OtherKing()) != 0
}

// IsLoss is true when the mover has lost: its king was taken or the
// opponent's king stands on the mover's temple.
func (g Game) IsLoss() bool {
	return !g.myKingAlive() || g.OtherKing() == OpponentTemple
}

// IsOtherLoss is IsLoss for the opponent.
func (g Game) IsOtherLoss() bool {
	return !g.otherKingAlive() || g.MyKing() == OpponentTemple
}

// CountPieces returns the number of the mover's pawns.
func (g Game) CountPieces() int {
	return bits.OnesCount32(g.MyPawns())
}

func (g Game) CountOtherPieces() int {
	return bits.OnesCount32(g.OtherPawns())
}

// Flip returns the same position with the other side to move.
func (g Game) Flip() Game {
	return Game{
		my:         g.other,
		other:      g.my,
		myCards:    g.otherCards,
		otherCards: g.myCards,
		table:      g.table,
		hash:       zobrist.Flip(g.hash),
	}
}

// Play moves the mover's piece on from to to using card c. The result is seen
// from the opponent's side, and the flag reports whether the move won the
// game. Play assumes the move is legal.
func (g Game) Play(from, to int, c card.Card) (Game, bool) {
	capSq := card.Mirror(to)
	other := g.other
	captured := other&(1<<capSq) != 0
	other &^= 1 << capSq

	my := g.my ^ (1<<from | 1<<to)
	isKing := from == g.MyKing()
	if isKing {
		my = pack(my, to)
	}
	capturedKing := captured && capSq == g.OtherKing()

	m := zobrist.Move{
		From:         from,
		To:           to,
		King:         isKing,
		Captured:     -1,
		CapturedKing: capturedKing,
		Card:         c,
		Table:        g.table,
	}
	if captured {
		m.Captured = capSq
	}
	next := Game{
		my:         other,
		other:      my,
		myCards:    g.otherCards,
		otherCards: g.myCards.Remove(c).Add(g.table),
		table:      c,
		hash:       keys.AddMove(g.hash, m),
	}
	return next, capturedKing || (isKing && to == OpponentTemple)
}

// Unplay takes back the opponent's last move: the opponent's piece on to (in
// the opponent's frame) goes back to from, the card on the table returns to
// the opponent's hand and taken goes back on the table. With uncapture the
// mover's piece on that square is restored; if the mover's king was taken
// there it is the king that comes back. The result has the opponent to move.
func (g Game) Unplay(from, to int, taken card.Card, uncapture bool) Game {
	mover := g.other ^ (1<<from | 1<<to)
	if int(g.other>>kingShift) == to {
		mover = pack(mover, from)
	}
	victim := g.my
	if uncapture {
		victim |= 1 << card.Mirror(to)
	}
	prev := Game{
		my:         mover,
		other:      victim,
		myCards:    g.otherCards.Remove(taken).Add(g.table),
		otherCards: g.myCards,
		table:      taken,
	}
	prev.hash = prev.computeHash()
	return prev
}

// Validate checks a position built from outside input.
func (g Game) Validate() error {
	if g.myCards.Count() != card.HandSize || g.otherCards.Count() != card.HandSize ||
		g.Cards().Count() != card.SelectionSize {
		return ErrCardCount
	}
	if g.MyKing() >= card.Squares || g.OtherKing() >= card.Squares {
		return ErrKingMissing
	}
	if !g.myKingAlive() || !g.otherKingAlive() {
		return ErrKingMissing
	}
	if g.MyPieces()&card.MirrorMask(g.OtherPieces()) != 0 {
		return ErrOverlap
	}
	if g.CountPieces() > MaxPawns || g.CountOtherPieces() > MaxPawns {
		return fmt.Errorf("too many pawns: %d and %d", g.CountPieces(), g.CountOtherPieces())
	}
	if g.IsLoss() || g.IsOtherLoss() {
		return ErrGameOver
	}
	return nil
}
