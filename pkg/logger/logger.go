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

// Package logger provides JSON structured logging using zerolog, optionally mirrored
// to an OTLP collector.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// Init configures the package level logger used by WithComponent and NewComponentLogger.
func Init(ctx context.Context, config *Config) error {
	l, err := build(ctx, config)
	if err != nil {
		return err
	}

	globalLogger = l
	log.Logger = globalLogger

	return nil
}

// NewWithWriter returns a Logger writing JSON lines to w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) Logger {
	return &zlogger{logger: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func build(ctx context.Context, config *Config) (zerolog.Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := parseLevel(config)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	if config.OTel.Enabled {
		otelWriter, err := NewOTELWriter(ctx, config.OTel)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to initialize OTel logging: %w", err)
		}

		output = NewMultiWriter(output, otelWriter)
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

func parseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(config.Level)
}

func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

// NewComponentLogger wraps the package level logger, tagged with component.
func NewComponentLogger(component string) Logger {
	return &zlogger{logger: WithComponent(component)}
}
