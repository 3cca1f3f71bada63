package movegen

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/onitama/game"
)

var ErrNegativeDepth = errors.New("perft depth cannot be negative")

// PerftParallel splits Perft over the root moves, running at most threads of
// them at a time.
func PerftParallel(ctx context.Context, g game.Game, depth, threads int) (uint64, error) {
	if depth < 0 {
		return 0, ErrNegativeDepth
	}
	if depth <= 1 {
		return Perft(g, depth), nil
	}
	var buf Buffer
	moves := Generate(g, &buf)

	var total atomic.Uint64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(threads, 1))
	for _, m := range moves {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if m.Win {
				total.Add(1)
				return nil
			}
			n := Perft(m.Next, depth-1)
			log.Debug().Str("move", m.String()).Uint64("nodes", n).Msg("perft-root-move")
			total.Add(n)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
