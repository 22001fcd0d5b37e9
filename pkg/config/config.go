// Package config provides config structure for the abicodec command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/erdgo/abicodec/pkg/codec"
	"github.com/erdgo/abicodec/pkg/collection/strings"
)

var (
	logLevels       = []string{"debug", "info", "warn", "error", "fatal"}
	defaultLogLevel = "info"
	maxHRPLength    = 83
)

type Config struct {
	LogLevel    string `yaml:"logLevel"`
	Development bool   `yaml:"development"`
	HRP         string `yaml:"hrp"`
	ABIPath     string `yaml:"abiPath"`
}

// Load reads config from YAML file at path, then inserts default and validates it.
// Empty path returns the default config.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.UnmarshalStrict(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := c.InsertDefault(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) InsertDefault() error {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.HRP == "" {
		c.HRP = codec.AddressHRP
	}
	return nil
}

// Merge overwrites the non empty values of config.
func (c *Config) Merge(config *Config) {
	if config == nil {
		return
	}
	if config.LogLevel != "" {
		c.LogLevel = config.LogLevel
	}
	if config.HRP != "" {
		c.HRP = config.HRP
	}
	if config.ABIPath != "" {
		c.ABIPath = config.ABIPath
	}
	if config.Development {
		c.Development = true
	}
}

func (c *Config) Validate() error {
	if !strings.Contain(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %s is specified", c.LogLevel)
	}
	if len(c.HRP) == 0 || len(c.HRP) > maxHRPLength {
		return fmt.Errorf("invalid hrp length %d is specified", len(c.HRP))
	}
	for _, r := range c.HRP {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("invalid hrp %s is specified", c.HRP)
		}
	}
	if c.ABIPath != "" {
		info, err := os.Stat(c.ABIPath)
		if err != nil {
			return fmt.Errorf("invalid abi path %s is specified: %w", c.ABIPath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("abi path %s is a directory", c.ABIPath)
		}
	}
	return nil
}
