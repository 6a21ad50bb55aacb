// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/pareto/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Chart ChartConfig `toml:"chart"`
}

// ChartConfig maps chart-related settings.
type ChartConfig struct {
	Samples     *int    `toml:"samples"`
	Seed        *int64  `toml:"seed"`
	Order       *string `toml:"order"`
	Weights     *string `toml:"weights"`
	Width       *int    `toml:"width"`
	Height      *int    `toml:"height"`
	Rows        *int    `toml:"rows"`
	Title       *string `toml:"title"`
	Format      *string `toml:"format"`
	Interactive *bool   `toml:"interactive"`
	Color       *bool   `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ParseOrder maps "desc"/"asc" to a sort order.
func ParseOrder(value string) (model.Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "desc", "descending":
		return model.Descending, nil
	case "asc", "ascending":
		return model.Ascending, nil
	default:
		return model.Descending, fmt.Errorf("invalid order %q (want desc or asc)", value)
	}
}
