package tablebase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/onitama/eval"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/movegen"
)

var ErrInconsistent = errors.New("tablebase value disagrees with its successors")

// VerifyOptions controls Verify. With zero Samples every cell is checked,
// otherwise that many random cells per thread.
type VerifyOptions struct {
	Samples int
	Threads int
}

// Expected computes the value of a non-terminal position from the stored
// values of its successors.
func (tb *TableBase) Expected(g game.Game) eval.Eval {
	best := eval.Tie
	moves := 0
	for next, win := range movegen.Forward(g) {
		v := eval.NewWin(1)
		if !win {
			v = tb.Eval(next).Backward()
		}
		if moves == 0 || v > best {
			best = v
		}
		moves++
	}
	return best
}

func (tb *TableBase) verifyCell(idx int) error {
	c := decode(idx)
	if !c.valid() {
		return nil
	}
	g := tb.position(c)
	if g.IsLoss() {
		if tb.data[idx] != eval.NewLoss(0) {
			return fmt.Errorf("%w: lost position stored as %v:\n%v", ErrInconsistent, tb.data[idx], g)
		}
		return nil
	}
	if got, want := tb.data[idx], tb.Expected(g); got != want {
		return fmt.Errorf("%w: stored %v, successors give %v:\n%v", ErrInconsistent, got, want, g)
	}
	return nil
}

// Verify checks that stored values agree with a one-ply search over the
// stored values of the successors.
func (tb *TableBase) Verify(ctx context.Context, opts VerifyOptions) error {
	defer logElapsed(time.Now(), "tablebase-verified")
	threads := max(opts.Threads, 1)
	var checked atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	for t := range threads {
		eg.Go(func() error {
			next := func(i int) (int, bool) {
				if opts.Samples > 0 {
					return frand.Intn(Size), i < opts.Samples
				}
				idx := t + i*threads
				return idx, idx < Size
			}
			for i := 0; ; i++ {
				idx, ok := next(i)
				if !ok {
					return nil
				}
				if i%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := tb.verifyCell(idx); err != nil {
					return err
				}
				checked.Add(1)
			}
		})
	}
	err := eg.Wait()
	log.Info().Int64("cells", checked.Load()).Int("threads", threads).Err(err).Msg("verify-finished")
	return err
}
