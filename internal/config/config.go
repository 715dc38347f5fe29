// Package config loads the driver's configuration from a TOML file,
// grounded on vovakirdan-surge's BurntSushi/toml-based CLI config (the
// teacher itself has no config file of its own to imitate).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the small set of knobs the spec names or implies: the single
// consumed flag from spec §6 (StrictCompatMode), plus the two numeric/
// boolean knobs the overload resolver and deprecation warning need.
type Config struct {
	StrictCompatMode bool `toml:"strict_compat_mode"`
	MaxUnions        int  `toml:"max_unions"`
	WarnDeprecated   bool `toml:"warn_deprecated"`
	CacheDir         string `toml:"cache_dir"`
}

// Default mirrors the spec's own defaults: strict_compat_mode off,
// MAX_UNIONS = 5 (spec §9), deprecation warnings on.
func Default() Config {
	return Config{
		StrictCompatMode: false,
		MaxUnions:        5,
		WarnDeprecated:   true,
		CacheDir:         ".callsig-cache",
	}
}

// Load reads a TOML config file, starting from Default() so an absent or
// partial file still yields sane values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if cfg.MaxUnions <= 0 {
		cfg.MaxUnions = Default().MaxUnions
	}
	return cfg, nil
}
