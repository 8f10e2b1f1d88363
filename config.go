package theworld

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a Game and its host.
type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Loop    LoopConfig    `toml:"loop" yaml:"loop"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Debug   bool          `toml:"debug" yaml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
}

type LoopConfig struct {
	TPS          int     `toml:"tps" yaml:"tps"`                       // host ticks per second
	MaxDeltaTime float64 `toml:"max_delta_time" yaml:"max_delta_time"` // seconds; 0 disables clamping
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// DefaultConfig returns the settings used for any field a config file
// leaves out.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "theworld",
			Width:  640,
			Height: 480,
		},
		Loop: LoopConfig{
			TPS:          60,
			MaxDeltaTime: 0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a config file on top of DefaultConfig. The format is
// chosen by extension: .toml, or .yaml/.yml.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data on top of DefaultConfig. format is "toml",
// "yaml" or "yml", with or without a leading dot.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}
