package sandsim

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries the grid dimensions and the tunable physics constants
// from spec §6: gravity, max fall speed, liquid dispersion rate, gas
// dispersal range, and gas option probability. It is loaded via viper so
// an embedder can override any field from a YAML file, environment
// variables (SANDSIM_*), or defaults, the way papapumpkin/quasar layers
// viper under its CLI.
type Config struct {
	Width     int `mapstructure:"width"`
	Height    int `mapstructure:"height"`
	ChunkSize int `mapstructure:"chunk_size"`

	Gravity              float64 `mapstructure:"gravity"`
	MaxFallSpeed         int     `mapstructure:"max_fall_speed"`
	LiquidDispersionRate int     `mapstructure:"liquid_dispersion_rate"`
	GasDispersalRange    int     `mapstructure:"gas_dispersal_range"`
	GasOptionProbability float64 `mapstructure:"gas_option_probability"`

	Seed int64 `mapstructure:"seed"`
}

// DefaultConfig returns the constants named in spec §6, seeded from the
// current time (non-deterministic across runs, per spec §1's Non-goals).
func DefaultConfig() Config {
	return Config{
		Width:                150,
		Height:               150,
		ChunkSize:            16,
		Gravity:              0.2,
		MaxFallSpeed:         10,
		LiquidDispersionRate: 5,
		GasDispersalRange:    5,
		GasOptionProbability: 0.1,
		Seed:                 time.Now().UnixNano(),
	}
}

// LoadConfig reads configuration from an optional file at path (if
// non-empty) layered under SANDSIM_-prefixed environment variables and the
// spec's defaults, the quasar/niceyeti-tabular way: defaults first, then
// file, then env, with env taking precedence.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("SANDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("width", cfg.Width)
	v.SetDefault("height", cfg.Height)
	v.SetDefault("chunk_size", cfg.ChunkSize)
	v.SetDefault("gravity", cfg.Gravity)
	v.SetDefault("max_fall_speed", cfg.MaxFallSpeed)
	v.SetDefault("liquid_dispersion_rate", cfg.LiquidDispersionRate)
	v.SetDefault("gas_dispersal_range", cfg.GasDispersalRange)
	v.SetDefault("gas_option_probability", cfg.GasOptionProbability)
	v.SetDefault("seed", cfg.Seed)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
