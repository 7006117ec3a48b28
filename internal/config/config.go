// Package config loads runtime settings for the CLI and the scanner
// from a config file and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Config is the full runtime configuration.
type Config struct {
	// Scan tunes the nonce-range scanner.
	Scan ScanConfig `mapstructure:"scan"`
	// Roulette selects the wheel variant: EUROPEAN or AMERICAN.
	Roulette RouletteConfig `mapstructure:"roulette"`
	// Log selects the logger profile: production or development.
	Log LogConfig `mapstructure:"log"`
}

type ScanConfig struct {
	Workers   int    `mapstructure:"workers"`    // 0 means GOMAXPROCS
	BatchSize uint64 `mapstructure:"batch_size"` // 0 means scanner default
	Limit     int    `mapstructure:"limit"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

type RouletteConfig struct {
	Wheel string `mapstructure:"wheel"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

const envPrefix = "FAIRBET"

// Load reads the configuration from the given file (optional) and the
// FAIRBET_* environment, layered over the defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.batch_size", 0)
	v.SetDefault("scan.limit", 100)
	v.SetDefault("scan.timeout_ms", 0)
	v.SetDefault("roulette.wheel", "EUROPEAN")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("fairbet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fairbet")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
			// No file is fine; defaults plus environment apply.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("config: scan.workers %d is negative: %w", c.Scan.Workers, engine.ErrInvalidArgument)
	}
	if c.Scan.Limit < 0 {
		return fmt.Errorf("config: scan.limit %d is negative: %w", c.Scan.Limit, engine.ErrInvalidArgument)
	}
	switch strings.ToUpper(c.Roulette.Wheel) {
	case "EUROPEAN", "AMERICAN":
	default:
		return fmt.Errorf("config: roulette.wheel %q is not EUROPEAN or AMERICAN: %w",
			c.Roulette.Wheel, engine.ErrInvalidArgument)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not a zap level: %w", c.Log.Level, engine.ErrInvalidArgument)
	}
	return nil
}
