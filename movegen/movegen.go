// Package movegen generates the moves of a position, forward for play and
// search, and backward for retrograde analysis.
package movegen

import (
	"iter"
	"math/bits"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

func lowBit(m uint32) int {
	return bits.TrailingZeros32(m)
}

// walk calls fn for every legal move, king first, then pawns by square, then
// by card and destination. It stops early when fn returns false.
func walk(g game.Game, fn func(from, to int, c card.Card) bool) bool {
	own := g.MyPieces()
	hand := g.MyCards()
	from := g.MyKing()
	pawns := g.MyPawns()
	for {
		for c := range hand.All() {
			for dests := card.Moves(c, from) &^ own; dests != 0; dests &= dests - 1 {
				if !fn(from, lowBit(dests), c) {
					return false
				}
			}
		}
		if pawns == 0 {
			return true
		}
		from = lowBit(pawns)
		pawns &= pawns - 1
	}
}

// Forward yields every successor of g together with whether the move wins on
// the spot. g must not be a decided position.
func Forward(g game.Game) iter.Seq2[game.Game, bool] {
	return func(yield func(game.Game, bool) bool) {
		walk(g, func(from, to int, c card.Card) bool {
			return yield(g.Play(from, to, c))
		})
	}
}

// Generate fills buf with the moves of g and returns the used part of it.
func Generate(g game.Game, buf *Buffer) []Move {
	n := 0
	walk(g, func(from, to int, c card.Card) bool {
		next, win := g.Play(from, to, c)
		buf[n] = Move{From: from, To: to, Card: c, Win: win, Next: next}
		n++
		return true
	})
	return buf[:n]
}

// CountMoves returns the number of legal moves without playing them.
func CountMoves(g game.Game) int {
	own := g.MyPieces()
	n := 0
	for pieces := own; pieces != 0; pieces &= pieces - 1 {
		from := lowBit(pieces)
		for c := range g.MyCards().All() {
			n += bits.OnesCount32(card.Moves(c, from) &^ own)
		}
	}
	return n
}
