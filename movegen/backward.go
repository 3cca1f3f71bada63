package movegen

import (
	"iter"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

// Backward yields every position from which one move by the opponent of g
// leads to g, with a flag telling whether that move was a capture.
//
// A capture leaves no trace, so each candidate is produced both with and
// without a restored piece of the side to move, as long as restoring it keeps
// that side at or below maxPawns pawns. If the mover's king is gone the last
// move must have taken it and only that reconstruction is produced.
// Predecessors that were already decided are skipped, and so is everything
// when g itself was decided before the last move.
func Backward(g game.Game, maxPawns int) iter.Seq2[game.Game, bool] {
	return func(yield func(game.Game, bool) bool) {
		if g.IsOtherLoss() {
			return
		}
		played := g.Table()
		theirs := g.OtherPieces()
		occupied := theirs | card.MirrorMask(g.MyPieces())

		myKing := g.MyKing()
		kingTaken := g.MyPieces()&(1<<myKing) == 0
		restorePawn := !kingTaken && g.CountPieces() < maxPawns

		emit := func(prev game.Game, uncaptured bool) bool {
			if prev.IsLoss() || prev.IsOtherLoss() {
				return true
			}
			return yield(prev, uncaptured)
		}

		for taken := range g.OtherCards().All() {
			for pieces := theirs; pieces != 0; pieces &= pieces - 1 {
				to := lowBit(pieces)
				if kingTaken && to != card.Mirror(myKing) {
					continue
				}
				for from := card.Origins(played, to) &^ occupied; from != 0; from &= from - 1 {
					sq := lowBit(from)
					if !kingTaken && !emit(g.Unplay(sq, to, taken, false), false) {
						return
					}
					if (kingTaken || restorePawn) && !emit(g.Unplay(sq, to, taken, true), true) {
						return
					}
				}
			}
		}
	}
}
