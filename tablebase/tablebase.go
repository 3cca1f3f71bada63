// Package tablebase computes and serves exact values for every endgame with
// at most one pawn per side, for one selection of five cards. The table is
// built once in memory by retrograde analysis and is read-only afterwards.
package tablebase

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/eval"
	"github.com/domino14/onitama/game"
)

// MaxPawns is the number of pawns per side the table covers.
const MaxPawns = 1

var ErrNotEnoughMemory = errors.New("not enough memory for a tablebase")

type TableBase struct {
	sel    card.Selection
	rank   [card.NumCards]int8
	splits [NumCardClasses]card.Split
	data   []eval.Eval
}

// New allocates and builds the table for a selection. It takes a while and
// runs on the calling goroutine.
func New(sel card.Selection) *TableBase {
	tb, err := alloc(sel)
	if err != nil {
		panic(err)
	}
	tb.build()
	return tb
}

func alloc(sel card.Selection) (*TableBase, error) {
	totalMem := memory.TotalMemory()
	if totalMem != 0 && totalMem < Size {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrNotEnoughMemory, Size, totalMem)
	}
	tb := &TableBase{sel: sel, data: make([]eval.Eval, Size)}
	for i := range tb.rank {
		tb.rank[i] = -1
	}
	for i, c := range sel {
		tb.rank[c] = int8(i)
	}
	for _, sp := range sel.Splits() {
		tb.splits[CardClass(sel, sp)] = sp
	}
	log.Info().Str("cards", sel.String()).
		Int("num-cells", Size).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("tablebase-size")
	return tb, nil
}

func (tb *TableBase) Selection() card.Selection {
	return tb.sel
}

func (tb *TableBase) cardRank(c card.Card) int {
	r := tb.rank[c]
	if r < 0 {
		panic(fmt.Sprintf("card %v is not in the table's selection %v", c, tb.sel))
	}
	return int(r)
}

func (tb *TableBase) cardClass(g game.Game) int {
	a, b := g.MyCards().Pair()
	return classByRanks(tb.cardRank(a), tb.cardRank(b), tb.cardRank(g.Table()))
}

// index assumes g is covered by the table.
func (tb *TableBase) index(g game.Game) int {
	return Index(tb.cardClass(g), g.MyKing(), g.OtherKing(),
		PieceClass(g.MyPawns()), PieceClass(g.OtherPawns()))
}

func (tb *TableBase) position(c cell) game.Game {
	my, other := c.pieces()
	sp := tb.splits[c.cls]
	return game.New(my, c.myKing, other, c.otherKing, sp.Mine, sp.Other, sp.Table)
}

// Covers reports whether g is stored in the table exactly.
func (tb *TableBase) Covers(g game.Game) bool {
	return g.CountPieces() <= MaxPawns && g.CountOtherPieces() <= MaxPawns &&
		tb.sel.Contains(g.Cards())
}

// Lookup returns the value of g and whether it is exact.
func (tb *TableBase) Lookup(g game.Game) (eval.Eval, bool) {
	return tb.Eval(g), tb.Covers(g)
}

// Eval returns the value of g for the side to move. Positions with more pawns
// than the table holds are folded down: the mover keeps its best pawn and
// the opponent its best reply pawn. That value is a guess, not a proof.
func (tb *TableBase) Eval(g game.Game) eval.Eval {
	if g.IsLoss() {
		return eval.NewLoss(0)
	}
	if g.IsOtherLoss() {
		panic("evaluating a position the mover has already won")
	}
	cls := tb.cardClass(g)
	var mineBuf, theirsBuf [game.MaxPawns + 1]int
	mine := pawnChoices(g.MyPawns(), mineBuf[:0])
	theirs := pawnChoices(g.OtherPawns(), theirsBuf[:0])

	best := eval.NewLoss(0)
	for _, p := range mine {
		worst := eval.NewWin(1)
		for _, q := range theirs {
			worst = min(worst, tb.data[Index(cls, g.MyKing(), g.OtherKing(), p, q)])
		}
		best = max(best, worst)
	}
	return best
}

func pawnChoices(pawns uint32, buf []int) []int {
	if pawns == 0 {
		return append(buf, NoPawn)
	}
	for ; pawns != 0; pawns &= pawns - 1 {
		buf = append(buf, PieceClass(pawns&-pawns))
	}
	return buf
}

// Checksum fingerprints the table contents.
func (tb *TableBase) Checksum() uint64 {
	return xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(&tb.data[0])), len(tb.data)))
}

func logElapsed(start time.Time, msg string) {
	log.Info().Dur("elapsed", time.Since(start)).Msg(msg)
}
