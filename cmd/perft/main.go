// perft counts move trees from the standard test position, for checking and
// timing move generation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/config"
	"github.com/domino14/onitama/movegen"
	"github.com/domino14/onitama/notation"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	g := movegen.TestGame()
	if args := cfg.Args(); len(args) > 0 {
		var err error
		g, err = notation.Parse(strings.Join(args, " "))
		if err != nil {
			log.Fatal().Err(err).Msg("bad position")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	maxDepth := cfg.GetInt(config.ConfigPerftDepth)
	if maxDepth < 0 {
		log.Fatal().Int("perft-depth", maxDepth).Msg("perft depth must not be negative")
	}
	threads := cfg.GetInt(config.ConfigThreads)
	for depth := 1; depth <= maxDepth; depth++ {
		tstart := time.Now()
		n, err := movegen.PerftParallel(ctx, g, depth, threads)
		if err != nil {
			log.Err(err).Msg("perft-interrupted")
			return
		}
		elapsed := time.Since(tstart)
		log.Info().Int("depth", depth).Uint64("nodes", n).
			Float64("nps", float64(n)/elapsed.Seconds()).
			Dur("elapsed", elapsed).Msg("perft")
	}
}
