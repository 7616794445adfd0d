// Package config holds the tunables for the connection's event poll loop.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults used when a key is absent from the config file.
const (
	DefaultPollInterval  = 25 * time.Millisecond
	DefaultStatsInterval = 10 * time.Second
)

// Config controls how often the application-facing handle drains events and
// how the process logs.
type Config struct {
	PollInterval  time.Duration // delay between two drains of the mailbox
	StatsInterval time.Duration // counter report period; 0 disables the reporter
	Debug         bool          // enable debug logging
}

// fileConfig is the on-disk TOML shape. Durations are Go duration strings.
type fileConfig struct {
	PollInterval  string `toml:"poll_interval"`
	StatsInterval string `toml:"stats_interval"`
	Debug         bool   `toml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		PollInterval:  DefaultPollInterval,
		StatsInterval: DefaultStatsInterval,
	}
}

// Load reads a TOML file and applies the keys it defines on top of Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return fromFile(raw, meta)
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(doc, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return Config{}, fmt.Errorf("config: parse poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}

	if meta.IsDefined("stats_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.StatsInterval))
		if err != nil {
			return Config{}, fmt.Errorf("config: parse stats_interval: %w", err)
		}
		cfg.StatsInterval = d
	}

	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("config: poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("config: stats_interval must not be negative, got %s", c.StatsInterval)
	}
	return nil
}
