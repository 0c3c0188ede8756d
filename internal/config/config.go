package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"go-object-inspector/internal/log"
)

// Config holds the settings shared by the inspector commands.
type Config struct {
	Inspect InspectConfig `koanf:"inspect"`
	Log     LogConfig     `koanf:"log"`
	Server  ServerConfig  `koanf:"server"`
	Output  OutputConfig  `koanf:"output"`
}

// InspectConfig controls how objects are traversed.
type InspectConfig struct {
	Recursive      bool `koanf:"recursive"`
	ForceAccess    bool `koanf:"force_access"`
	CycleDetection bool `koanf:"cycle_detection"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// ServerConfig controls the MCP server transport.
type ServerConfig struct {
	Mode string `koanf:"mode"` // stdio or sse
	Addr string `koanf:"addr"`
	Path string `koanf:"path"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color bool `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Inspect: InspectConfig{
			Recursive:   false,
			ForceAccess: true,
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
		Server: ServerConfig{
			Mode: "stdio",
			Addr: ":8080",
			Path: "/mcp/sse",
		},
		Output: OutputConfig{
			Color: false,
		},
	}
}

// Load loads configuration from a file over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the first config file found in the working directory,
// falling back to the defaults. A file that cannot be loaded is logged and
// skipped.
func LoadOrDefault() *Config {
	for _, name := range []string{"inspector.yaml", "inspector.yml", "inspector.json", "inspector.toml"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		cfg, err := Load(name)
		if err != nil {
			log.Error(err, "Ignoring config file", "file", name)
			continue
		}
		return cfg
	}
	return DefaultConfig()
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "stdio", "sse":
	default:
		return errors.Errorf("unknown server mode %q", c.Server.Mode)
	}
	return nil
}
