package tablebase

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/eval"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/movegen"
)

// build fills the table level by level. Losses of one level give the wins of
// the next through checkWin, and every new win may complete a loss through
// checkLoss. Cells never reached stay Tie.
func (tb *TableBase) build() {
	defer logElapsed(time.Now(), "tablebase-built")

	losses := tb.seedLosses()
	wins := tb.seedCaptures()
	log.Debug().Int("losses", len(losses)).Int("king-captures", len(wins)).Msg("tablebase-seeded")

	for level := 0; len(losses) > 0 || len(wins) > 0; level++ {
		for _, idx := range losses {
			v := tb.data[idx].Backward()
			for prev := range movegen.Backward(tb.position(decode(int(idx))), MaxPawns) {
				if i, ok := tb.checkWin(prev, v); ok {
					wins = append(wins, i)
				}
			}
		}
		nwins := len(wins)
		losses = losses[:0]
		for _, idx := range wins {
			for prev := range movegen.Backward(tb.position(decode(int(idx))), MaxPawns) {
				if i, ok := tb.checkLoss(prev); ok {
					losses = append(losses, i)
				}
			}
		}
		wins = wins[:0]
		log.Debug().Int("level", level).Int("wins", nwins).Int("losses", len(losses)).
			Msg("retrograde-level")
	}
}

// seedLosses marks every position whose king has been driven off its temple
// as Loss(0).
func (tb *TableBase) seedLosses() []int32 {
	var losses []int32
	for idx := range Size {
		c := decode(idx)
		if c.otherKing == game.OpponentTemple && c.valid() {
			tb.data[idx] = eval.NewLoss(0)
			losses = append(losses, int32(idx))
		}
	}
	return losses
}

// seedCaptures finds every position where a move takes the opponent's king.
// The position after such a move is not stored, so it is rebuilt from each
// cell whose king square holds an enemy piece and walked back once.
func (tb *TableBase) seedCaptures() []int32 {
	var wins []int32
	win := eval.NewWin(1)
	for idx := range Size {
		c := decode(idx)
		my, other, ok := c.kingTaken()
		if !ok {
			continue
		}
		sp := tb.splits[c.cls]
		after := game.New(my, c.myKing, other, c.otherKing, sp.Mine, sp.Other, sp.Table)
		for prev := range movegen.Backward(after, MaxPawns) {
			if i, ok := tb.checkWin(prev, win); ok {
				wins = append(wins, i)
			}
		}
	}
	return wins
}

// checkWin stores v for prev if it is better than what prev has. It returns
// prev's index when prev has a new value.
func (tb *TableBase) checkWin(prev game.Game, v eval.Eval) (int32, bool) {
	idx := tb.index(prev)
	cur := tb.data[idx]
	switch {
	case cur.IsLoss():
		panic(fmt.Sprintf("position resolved as %v has a move to a %v:\n%v", cur, v.Forward(), prev))
	case cur.IsWin() && cur >= v:
		return 0, false
	}
	tb.data[idx] = v
	return int32(idx), true
}

// checkLoss resolves prev once every move from it leads to a position won by
// the opponent. The value is that of the longest resistance.
func (tb *TableBase) checkLoss(prev game.Game) (int32, bool) {
	idx := tb.index(prev)
	if tb.data[idx] != eval.Tie {
		return 0, false
	}
	best := eval.Tie
	moves := 0
	for next, win := range movegen.Forward(prev) {
		if win {
			panic(fmt.Sprintf("unresolved position has a winning move:\n%v", prev))
		}
		v := tb.data[tb.index(next)]
		if !v.IsWin() {
			return 0, false
		}
		if b := v.Backward(); moves == 0 || b > best {
			best = b
		}
		moves++
	}
	if moves == 0 {
		return 0, false
	}
	tb.data[idx] = best
	return int32(idx), true
}
