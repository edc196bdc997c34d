// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config holds riffls defaults (~/.config/riffwalk/config.yaml).
// Pointer fields tell "not set" apart from zero values.
type Config struct {
	Mmap      *bool  `yaml:"mmap"`
	Limit     *int   `yaml:"limit"`
	JSON      *bool  `yaml:"json"`
	Dump      *int   `yaml:"dump"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "riffwalk", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty.
// A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// settings are the effective options after flags and config are merged.
type settings struct {
	mmap      bool
	start     int64
	limit     int
	json      bool
	dump      int
	logLevel  string
	logFormat string
}

// apply fills s from cfg wherever the matching flag was not set explicitly.
func (s *settings) apply(c *cli.Command, cfg Config) {
	if cfg.Mmap != nil && !c.IsSet("mmap") {
		s.mmap = *cfg.Mmap
	}
	if cfg.Limit != nil && !c.IsSet("limit") {
		s.limit = *cfg.Limit
	}
	if cfg.JSON != nil && !c.IsSet("json") {
		s.json = *cfg.JSON
	}
	if cfg.Dump != nil && !c.IsSet("dump") {
		s.dump = *cfg.Dump
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
}
