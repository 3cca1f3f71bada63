package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigCards          = "cards"
	ConfigDebug          = "debug"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
	ConfigThreads        = "threads"
	ConfigPerftDepth     = "perft-depth"
	ConfigVerifySamples  = "verify-samples"
	ConfigHistogramBins  = "histogram-bins"
	ConfigHistogramWidth = "histogram-width"
)

const DefaultCards = "ox,boar,horse,elephant,crab"

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config with every default set and nothing read
// from flags or the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigCards, DefaultCards)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigThreads, runtime.GOMAXPROCS(0))
	c.SetDefault(ConfigPerftDepth, 5)
	c.SetDefault(ConfigVerifySamples, 100000)
	c.SetDefault(ConfigHistogramBins, 16)
	c.SetDefault(ConfigHistogramWidth, 60)
}

// Load reads flags from args and ONITAMA_* environment variables, e.g.
// ONITAMA_PERFT_DEPTH=6. A flag given on the command line wins over the
// environment, and the environment wins over a flag's default.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("onitama", pflag.ContinueOnError)
	fs.String(ConfigCards, DefaultCards, "the five cards in play, comma-separated; tbgen takes several sets separated by ;")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.Int(ConfigThreads, runtime.GOMAXPROCS(0), "number of threads for perft and verification")
	fs.Int(ConfigPerftDepth, 5, "perft depth")
	fs.Int(ConfigVerifySamples, 100000, "random cells to verify per thread, 0 for all of them")
	fs.Int(ConfigHistogramBins, 16, "bins of the ply histogram")
	fs.Int(ConfigHistogramWidth, 60, "width of the ply histogram")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("onitama")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// Args returns the positional arguments left over by Load.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings returns every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
