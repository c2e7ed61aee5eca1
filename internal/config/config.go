// Package config handles configuration loading using viper.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/log"
)

// Config is the top-level configuration.
type Config struct {
	Capture CaptureConfig `mapstructure:"capture"`
	Sinks   []SinkConfig  `mapstructure:"sinks"`
	Log     log.Config    `mapstructure:"log"`
}

// CaptureConfig selects the capture source.
type CaptureConfig struct {
	File string `mapstructure:"file"`
}

// SinkConfig selects one packet consumer. Options are decoded per sink
// type, the way plugin components read their own config section.
type SinkConfig struct {
	Type    string         `mapstructure:"type"`
	Options map[string]any `mapstructure:"options"`
}

// DecodeOptions decodes the sink's untyped option map into out.
func (s *SinkConfig) DecodeOptions(out any) error {
	if err := mapstructure.Decode(s.Options, out); err != nil {
		return fmt.Errorf("decode %s sink options: %w", s.Type, err)
	}
	return nil
}

// ConsoleSinkOptions configures the console sink.
type ConsoleSinkOptions struct {
	Verbose bool `mapstructure:"verbose"`
}

// WSSinkOptions configures the websocket live-view sink.
type WSSinkOptions struct {
	Listen string `mapstructure:"listen"`
}

var knownSinkTypes = map[string]bool{
	"console": true,
	"ws":      true,
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("sinks", []map[string]any{{"type": "console"}})

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.Capture.File == "" {
		return fmt.Errorf("%w: capture.file is required", core.ErrConfigInvalid)
	}
	for i, sink := range c.Sinks {
		if !knownSinkTypes[sink.Type] {
			return fmt.Errorf("%w: sinks[%d]: unknown type %q", core.ErrConfigInvalid, i, sink.Type)
		}
	}
	return nil
}
