package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetString(ConfigCards), DefaultCards)
	is.Equal(cfg.GetInt(ConfigPerftDepth), 5)
	is.True(cfg.GetInt(ConfigThreads) >= 1)
	is.True(!cfg.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--perft-depth", "6", "--debug", "--cards", "tiger,crane,dragon,eel,cobra", "show"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigPerftDepth), 6)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetString(ConfigCards), "tiger,crane,dragon,eel,cobra")
	is.Equal(cfg.Args(), []string{"show"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("ONITAMA_VERIFY_SAMPLES", "42")
	t.Setenv("ONITAMA_PERFT_DEPTH", "3")
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--perft-depth", "4"}))
	// the environment beats a default flag value
	is.Equal(cfg.GetInt(ConfigVerifySamples), 42)
	// but not a flag that was given
	is.Equal(cfg.GetInt(ConfigPerftDepth), 4)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}
