package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/auslib/core/factory"
	"github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/core/schedule"
	"github.com/kilianp07/auslib/infra/logger"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. AUS_COMPILE__MODE=collect.
const EnvPrefix = "AUS_"

type Config struct {
	Input   InputConfig          `json:"input"`
	Compile schedule.Config      `json:"compile"`
	Store   factory.ModuleConfig `json:"store"`
	Metrics metrics.Config       `json:"metrics"`
	Logging logger.Options       `json:"logging"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Input.SetDefaults()
	c.Compile.SetDefaults()
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := c.Compile.Validate(); err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
