package minwage

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the file form of a Source's settings.
type Config struct {
	DataDir  string `toml:"data_dir"`
	Timezone string `toml:"timezone"`
}

// DefaultConfig returns the settings New uses without options.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir,
		Timezone: "Asia/Tokyo",
	}
}

// LoadConfig reads a TOML config file. A missing file yields the defaults.
// MINWAGE_DATA_DIR and MINWAGE_TIMEZONE override the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("minwage: parse config %q: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("minwage: read config %q: %w", path, err)
	}

	if v := os.Getenv("MINWAGE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MINWAGE_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	return cfg, nil
}

// Location resolves the configured timezone. Asia/Tokyo and the empty
// name map to the built-in fixed zone, so no tzdata is needed for them.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Asia/Tokyo", "JST":
		return jstZone, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("minwage: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Options converts c into Source options.
func (c Config) Options() ([]Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return []Option{WithDataDir(c.DataDir), WithLocation(loc)}, nil
}
