// Package config loads codec settings from TOML files and SIF_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jacoelho/sif/internal/logging"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/sifxml"
)

// Environment overrides, applied after the file.
const (
	EnvVersion            = "SIF_VERSION"
	EnvStrictTypes        = "SIF_STRICT_TYPES"
	EnvStrictVersioning   = "SIF_STRICT_VERSIONING"
	EnvKeepMessageContent = "SIF_KEEP_MESSAGE_CONTENT"
	EnvDeclaration        = "SIF_DECLARATION"
	EnvIndent             = "SIF_INDENT"
	EnvLogLevel           = "SIF_LOG_LEVEL"
	EnvLogNoColor         = "SIF_LOG_NOCOLOR"
	EnvMetrics            = "SIF_METRICS"
)

// Config holds codec, logging and metrics settings.
type Config struct {
	Version            sifversion.Version
	StrictTypeParsing  bool
	StrictVersioning   bool
	KeepMessageContent bool
	Declaration        bool
	Indent             string
	Log                LogConfig
	Metrics            MetricsConfig
}

// LogConfig configures the console logger.
type LogConfig struct {
	Level   string
	NoColor bool
}

// MetricsConfig toggles codec instrumentation.
type MetricsConfig struct {
	Enabled bool
}

type fileConfig struct {
	Version            string `toml:"version"`
	StrictTypeParsing  bool   `toml:"strict_type_parsing"`
	StrictVersioning   bool   `toml:"strict_versioning"`
	KeepMessageContent bool   `toml:"keep_message_content"`
	Declaration        bool   `toml:"declaration"`
	Indent             string `toml:"indent"`
	Log                struct {
		Level   string `toml:"level"`
		NoColor bool   `toml:"no_color"`
	} `toml:"log"`
	Metrics struct {
		Enabled bool `toml:"enabled"`
	} `toml:"metrics"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Version: sifversion.Default,
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path (skipped when empty), then applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if cfg, err = Parse(string(data)); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. Keys absent from the text
// keep their default values.
func Parse(text string) (Config, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if meta.IsDefined("version") {
		v, err := sifversion.Parse(raw.Version)
		if err != nil {
			return Config{}, fmt.Errorf("parse version: %w", err)
		}
		cfg.Version = v
	}
	if meta.IsDefined("strict_type_parsing") {
		cfg.StrictTypeParsing = raw.StrictTypeParsing
	}
	if meta.IsDefined("strict_versioning") {
		cfg.StrictVersioning = raw.StrictVersioning
	}
	if meta.IsDefined("keep_message_content") {
		cfg.KeepMessageContent = raw.KeepMessageContent
	}
	if meta.IsDefined("declaration") {
		cfg.Declaration = raw.Declaration
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("metrics", "enabled") {
		cfg.Metrics.Enabled = raw.Metrics.Enabled
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if raw, ok := lookup(EnvVersion); ok && strings.TrimSpace(raw) != "" {
		v, err := sifversion.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVersion, err)
		}
		cfg.Version = v
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvStrictTypes, &cfg.StrictTypeParsing},
		{EnvStrictVersioning, &cfg.StrictVersioning},
		{EnvKeepMessageContent, &cfg.KeepMessageContent},
		{EnvDeclaration, &cfg.Declaration},
		{EnvLogNoColor, &cfg.Log.NoColor},
		{EnvMetrics, &cfg.Metrics.Enabled},
	}
	for _, b := range bools {
		raw, ok := lookup(b.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", b.name, raw)
		}
		*b.dst = v
	}
	if raw, ok := lookup(EnvIndent); ok {
		cfg.Indent = raw
	}
	if raw, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(raw) != "" {
		cfg.Log.Level = strings.TrimSpace(raw)
	}
	return nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	if !c.Version.IsKnown() {
		return fmt.Errorf("config: unsupported version %q", c.Version)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("config: indent must be spaces or tabs")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Logging returns the logger options.
func (c Config) Logging() logging.Options {
	return logging.Options{Level: c.Log.Level, NoColor: c.Log.NoColor}
}

// Options converts the codec settings to sifxml options.
func (c Config) Options() sifxml.Options {
	return sifxml.NewOptions().
		WithVersion(c.Version).
		WithStrictTypeParsing(c.StrictTypeParsing).
		WithStrictVersioning(c.StrictVersioning).
		WithKeepMessageContent(c.KeepMessageContent).
		WithDeclaration(c.Declaration).
		WithIndent(c.Indent)
}
