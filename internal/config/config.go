// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Package config loads the jevent tool configuration.
//
// Config files are HuJSON: standard JSON plus comments and trailing
// commas, the dialect meant for human-edited configuration. A missing file
// path yields the built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/tailscale/hujson"
)

// Config carries the tunables shared by the jevent commands.
type Config struct {
	// BatchSize is the fragment-batch size per drive cycle: how many
	// fragments are buffered before the tokenizer runs. Smaller values
	// emit events sooner at the cost of more tokenizer invocations.
	BatchSize int `json:"batchSize" default:"32"`

	// ChunkSize is the byte granularity used when fragmenting a raw input
	// stream (file or stdin) into fragments.
	ChunkSize int `json:"chunkSize" default:"512"`

	// Listen is the address the serve command binds.
	Listen string `json:"listen" default:":8080"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads the configuration from path, filling unset fields with
// defaults. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first nonsensical setting, if any.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.New("batchSize must be positive")
	}
	if c.ChunkSize <= 0 {
		return errors.New("chunkSize must be positive")
	}
	if c.Listen == "" {
		return errors.New("listen must not be empty")
	}
	return nil
}
