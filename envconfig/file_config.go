package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config represents the TOML configuration structure
type Config struct {
	Map struct {
		PutReturns string `toml:"put_returns"`
		ValueType  string `toml:"value_type"`
	} `toml:"map"`

	Logging struct {
		Debug bool `toml:"debug"`
		Level int  `toml:"level"`
	} `toml:"logging"`
}

var (
	configOnce sync.Once
	config     *Config
	configPath string
)

// GetConfigPaths returns the list of possible config file paths, in the order
// they are tried
func GetConfigPaths() []string {
	var paths []string
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "typedmap", "config.toml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "typedmap", "config.toml"),
			filepath.Join(home, ".typedmap", "config.toml"),
		)
	}

	return paths
}

// LoadConfigFile decodes the first config file found in paths. It returns a
// nil Config when none exists.
func LoadConfigFile(paths []string) (*Config, string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		var cfg Config
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, "", fmt.Errorf("error parsing config file %s: %w", path, err)
		}
		return &cfg, path, nil
	}
	return nil, "", nil
}

// GetConfigValue returns the value for a given environment variable key from the config file
func GetConfigValue(key string) string {
	configOnce.Do(func() {
		var err error
		config, configPath, err = LoadConfigFile(GetConfigPaths())
		if err != nil {
			slog.Warn("failed to load config file", "error", err)
		} else if config != nil {
			slog.Debug("loaded config file", "path", configPath)
		}
	})

	return config.lookup(key)
}

func (c *Config) lookup(key string) string {
	if c == nil {
		return ""
	}

	switch key {
	case "TYPEDMAP_DEBUG":
		if c.Logging.Level > 0 {
			return strconv.Itoa(c.Logging.Level)
		}
		if c.Logging.Debug {
			return "true"
		}
	case "TYPEDMAP_PUT_RETURNS":
		return c.Map.PutReturns
	case "TYPEDMAP_VALUE_TYPE":
		return c.Map.ValueType
	}

	return ""
}

// GenerateExampleConfig returns a commented example TOML configuration
func GenerateExampleConfig() string {
	return `# typedmap configuration file
# Environment variables take precedence over these values.

[map]
# Value reported by put: "previous" (default) or "stored"
put_returns = "previous"
# Default value type for show: string, number, bool, object, array, any
value_type = "any"

[logging]
# Enable debug logging (default: false)
debug = false
# 1 for debug, 2 for trace; overrides debug when set
level = 0
`
}
