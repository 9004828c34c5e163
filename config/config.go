// Package config loads the analyzer configuration from YAML with
// environment overrides.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/streetlens/go-activity/analysis"
)

// SamplingConfig holds the sampling defaults applied when a caller does not
// override them per run.
type SamplingConfig struct {
	SampleFrames         int     `yaml:"sample_frames" json:"sample_frames"`
	FrameIntervalSeconds float64 `yaml:"frame_interval_seconds" json:"frame_interval_seconds"`
	MaxReads             int     `yaml:"max_reads" json:"max_reads"`
}

// Config is the full application configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level" json:"log_level"`
	Sampling  SamplingConfig  `yaml:"sampling" json:"sampling"`
	Detectors analysis.Config `yaml:"detectors" json:"detectors"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Sampling: SamplingConfig{
			SampleFrames:         5,
			FrameIntervalSeconds: 10,
			MaxReads:             10000,
		},
		Detectors: analysis.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "reading config %q", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config %q", path)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ACTIVITY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ACTIVITY_SAMPLE_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sampling.SampleFrames = n
		}
	}
	if v := os.Getenv("ACTIVITY_FRAME_INTERVAL_SECONDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Sampling.FrameIntervalSeconds = f
		}
	}
}
