package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/tablebase"
)

// The cache keeps one tablebase per card selection for the life of the
// process. Tables take a while to build and a dozen megabytes each, so every
// caller asking for the same cards gets the same table.

type entry struct {
	once sync.Once
	tb   *tablebase.TableBase
}

type cache struct {
	sync.Mutex
	tables map[card.Selection]*entry
}

type buildFunc func(sel card.Selection) *tablebase.TableBase

// GlobalTableCache is our global table cache.
var GlobalTableCache *cache

var build buildFunc = tablebase.New

func (c *cache) get(sel card.Selection) *tablebase.TableBase {
	c.Lock()
	e, ok := c.tables[sel]
	if !ok {
		e = &entry{}
		c.tables[sel] = e
	}
	c.Unlock()

	e.once.Do(func() {
		log.Debug().Str("cards", sel.String()).Msg("building table for cache")
		e.tb = build(sel)
	})
	return e.tb
}

func CreateGlobalTableCache() {
	GlobalTableCache = &cache{tables: make(map[card.Selection]*entry)}
}

var createOnce sync.Once

func global() *cache {
	createOnce.Do(func() {
		if GlobalTableCache == nil {
			CreateGlobalTableCache()
		}
	})
	return GlobalTableCache
}

// Load returns the table for sel, building it on first use.
func Load(sel card.Selection) *tablebase.TableBase {
	return global().get(sel)
}

// Warm builds the tables for several selections, at most threads at a time.
func Warm(ctx context.Context, sels []card.Selection, threads int) error {
	c := global()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(threads, 1))
	for _, sel := range lo.Uniq(sels) {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.get(sel)
			return nil
		})
	}
	return eg.Wait()
}

// Loaded lists the selections with a table, in card order.
func Loaded() []card.Selection {
	c := global()
	c.Lock()
	defer c.Unlock()
	sels := lo.Keys(c.tables)
	slices.SortFunc(sels, func(a, b card.Selection) int {
		return slices.Compare(a[:], b[:])
	})
	return sels
}
