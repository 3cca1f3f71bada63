// tbgen builds the tablebases for one or more card selections, prints how the
// values are distributed and checks each table against its own successors.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/cache"
	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/config"
	"github.com/domino14/onitama/tablebase"
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// pliesSample expands a distribution into one value per decided cell, which
// is what the histogram wants.
func pliesSample(d tablebase.Distribution) []float64 {
	plies, weights := d.Plies()
	data := make([]float64, 0, d.Decided())
	for i, p := range plies {
		for range int(weights[i]) {
			data = append(data, p)
		}
	}
	return data
}

// report prints the distribution of one table and checks it.
func report(cfg *config.Config, tb *tablebase.TableBase) error {
	d := tb.Distribution()
	mean, stddev := d.MeanStdDevPlies()
	log.Info().Str("cards", tb.Selection().String()).
		Int("decided", d.Decided()).
		Int("ties", d.Ties).
		Float64("mean-plies", mean).
		Float64("stddev-plies", stddev).
		Str("checksum", fmt.Sprintf("%016x", tb.Checksum())).
		Msg("tablebase-distribution")

	fmt.Printf("%s\n", tb.Selection())
	fmt.Print(d.String())
	if data := pliesSample(d); len(data) > 0 {
		h := histogram.Hist(cfg.GetInt(config.ConfigHistogramBins), data)
		if err := histogram.Fprint(os.Stdout, h, histogram.Linear(cfg.GetInt(config.ConfigHistogramWidth))); err != nil {
			log.Err(err).Msg("could not print histogram")
		}
	}

	return tb.Verify(context.Background(), tablebase.VerifyOptions{
		Samples: cfg.GetInt(config.ConfigVerifySamples),
		Threads: cfg.GetInt(config.ConfigThreads),
	})
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)

	sels, err := card.ParseSelections(cfg.GetString(config.ConfigCards))
	if err != nil {
		log.Fatal().Err(err).Msg("bad card selection")
	}

	// Each build is single-threaded, so several selections build side by side.
	if err := cache.Warm(context.Background(), sels, cfg.GetInt(config.ConfigThreads)); err != nil {
		log.Fatal().Err(err).Msg("could not build tables")
	}
	for _, sel := range sels {
		if err := report(cfg, cache.Load(sel)); err != nil {
			log.Fatal().Err(err).Str("cards", sel.String()).Msg("tablebase-inconsistent")
		}
	}
}
