/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads exporter configuration from a JSON file, .env files and
// prefixed environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/carverauto/lantime-exporter/pkg/logger"
)

// EnvPrefix is prepended to every environment variable the exporter reads.
const EnvPrefix = "LANTIME_PROMETHEUS_"

var errInvalidConfigPtr = errors.New("config must be a non-nil pointer")

// ConfigLoader fills dst from one configuration source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configuration structs that can check themselves.
type Validator interface {
	Validate() error
}

// Config layers the configuration sources. Later sources override earlier ones:
// the caller's defaults, the JSON file, .env files, then the process environment.
type Config struct {
	fileLoader ConfigLoader
	envLoader  ConfigLoader
	envFiles   []string
	logger     logger.Logger
}

// NewConfig returns a loader reading variables with the given prefix and the listed
// .env files, if present.
func NewConfig(log logger.Logger, prefix string, envFiles ...string) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		fileLoader: &FileConfigLoader{logger: log},
		envLoader:  NewEnvConfigLoader(log, prefix),
		envFiles:   envFiles,
		logger:     log,
	}
}

// Load overlays every source onto cfg without validating it, so that callers can
// apply command line overrides first.
func (c *Config) Load(ctx context.Context, path string, cfg interface{}) error {
	if cfg == nil {
		return errInvalidConfigPtr
	}

	if path != "" {
		if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
			return err
		}
	}

	if err := LoadDotEnv(c.logger, c.envFiles...); err != nil {
		return err
	}

	return c.envLoader.Load(ctx, path, cfg)
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// LoadDotEnv exports the variables of each existing file into the process environment.
// Variables that are already set win, and missing files are skipped.
func LoadDotEnv(log logger.Logger, files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}

		if log != nil {
			log.Debug().Str("file", file).Msg("Loaded environment file")
		}
	}

	return nil
}
