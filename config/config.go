// Package config loads weight mirror settings from a yaml file and WEIGHTMIRROR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/weightmirror/geom"
	"github.com/binzume/weightmirror/skin"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const FileSuffix = ".mirrorconfig.yaml"

type Config struct {
	SourceSuffix string   `yaml:"sourceSuffix" env:"WEIGHTMIRROR_SOURCE_SUFFIX"`
	TargetSuffix string   `yaml:"targetSuffix" env:"WEIGHTMIRROR_TARGET_SUFFIX"`
	Axis         string   `yaml:"axis" env:"WEIGHTMIRROR_AXIS"`
	Epsilon      float64  `yaml:"epsilon" env:"WEIGHTMIRROR_EPSILON"`
	Workers      int      `yaml:"workers" env:"WEIGHTMIRROR_WORKERS"`
	Objects      []string `yaml:"objects" env:"WEIGHTMIRROR_OBJECTS" envSeparator:","`
}

func Default() *Config {
	return &Config{
		SourceSuffix: skin.DefaultSourceSuffix,
		TargetSuffix: skin.DefaultTargetSuffix,
		Axis:         geom.AxisX.String(),
		Epsilon:      skin.DefaultEpsilon,
		Workers:      1,
	}
}

// Load reads a yaml config file over the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return conf, nil
}

// FindFile returns the config file placed next to input, or "" if there is none.
func FindFile(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	path := base + FileSuffix
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// ApplyEnv overrides fields set by WEIGHTMIRROR_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) MirrorOption() (*skin.MirrorOption, error) {
	axis, err := geom.ParseAxis(c.Axis)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, skin.ErrInvalidAxis)
	}
	opt := &skin.MirrorOption{
		SourceSuffix: c.SourceSuffix,
		TargetSuffix: c.TargetSuffix,
		Axis:         axis,
		Epsilon:      c.Epsilon,
		Workers:      c.Workers,
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}
