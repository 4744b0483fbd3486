package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultConfigName is picked up from the working directory when --config is
// not given.
const defaultConfigName = "onion.toml"

// Config holds defaults read from a config file. Command-line flags take
// precedence over every field.
type Config struct {
	Diameters []float64 `toml:"diameters" yaml:"diameters"`
	MaxLayers int       `toml:"max_layers" yaml:"max_layers"`
	Hull      bool      `toml:"hull" yaml:"hull"`
	Formats   []string  `toml:"formats" yaml:"formats"`
	Neighbors bool      `toml:"neighbors" yaml:"neighbors"`
	Labels    bool      `toml:"labels" yaml:"labels"`
	NoCache   bool      `toml:"no_cache" yaml:"no_cache"`

	Server ServerConfig `toml:"server" yaml:"server"`
}

// ServerConfig holds defaults for "onion serve".
type ServerConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	MongoURI string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db" yaml:"mongo_db"`
}

// loadConfig reads the config file at path. An empty path falls back to
// defaultConfigName in the working directory, and a missing default file is
// not an error. It returns the path actually read, or "" when none was.
func loadConfig(path string) (Config, string, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, "", nil
		}
		return cfg, "", fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, "", fmt.Errorf("config %s: unsupported extension %q (want .toml or .yaml)", path, ext)
	}
	if err != nil {
		return cfg, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, path, nil
}

// unlessSet returns the flag value when the user set the flag, else def.
func unlessSet[T any](cmd *cobra.Command, name string, flag, def T) T {
	if cmd.Flags().Changed(name) {
		return flag
	}
	return def
}
