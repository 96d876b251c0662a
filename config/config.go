package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is picked up from the working directory when no --config flag
// is given
const DefaultFile = "kplc.toml"

// Format is the encoding of a configuration file
type Format int

const (
	// FormatTOML is used for ".toml" and every unknown extension
	FormatTOML Format = iota

	// FormatYAML is used for ".yaml" and ".yml"
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds every setting the compiler reads from a file
type Config struct {
	Scanner Scanner `toml:"scanner" yaml:"scanner"`
	Output  Output  `toml:"output" yaml:"output"`
	Log     Log     `toml:"log" yaml:"log"`
}

// Scanner settings
type Scanner struct {
	MaxIdentLen int `toml:"max_ident_len" yaml:"max_ident_len"`
}

// Output settings
type Output struct {
	Color bool `toml:"color" yaml:"color"`
	Echo  bool `toml:"echo" yaml:"echo"`
}

// Log settings. Level is one of debug, info, warn or error
type Log struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the settings used when no file is present
func Default() Config {
	return Config{
		Scanner: Scanner{MaxIdentLen: 15},
		Output:  Output{Color: true},
		Log:     Log{Level: "warn"},
	}
}

// Load decodes the file at "path" on top of the defaults. The format follows
// the file extension
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	format := detectFormat(path)
	if err := parseContent(content, format, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s config %s: %w", format, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional behaves like Load but falls back to the defaults when the file
// does not exist
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Validate rejects settings the compiler cannot run with
func (c Config) Validate() error {
	if c.Scanner.MaxIdentLen < 1 {
		return fmt.Errorf("scanner.max_ident_len must be positive, got %d", c.Scanner.MaxIdentLen)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps a level name to its slog level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(content, cfg)
	default:
		_, err := toml.Decode(string(content), cfg)
		return err
	}
}
