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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/carverauto/lantime-exporter/pkg/config"
	httpx "github.com/carverauto/lantime-exporter/pkg/http"
	"github.com/carverauto/lantime-exporter/pkg/lantime"
	"github.com/carverauto/lantime-exporter/pkg/lifecycle"
	"github.com/carverauto/lantime-exporter/pkg/logger"
	"github.com/carverauto/lantime-exporter/pkg/metrics"
	"github.com/carverauto/lantime-exporter/pkg/poller"
	"github.com/carverauto/lantime-exporter/pkg/version"
)

const (
	serviceName   = "lantime-exporter"
	metricsPrefix = "lantime_exporter"
	shutdownGrace = 5 * time.Second
)

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		log.Fatalf("Fatal error: %v", err)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Println(serviceName, version.GetFullVersion())
		return nil
	}

	ctx := context.Background()

	// Step 1: defaults, then file, .env and environment, then explicit flags
	cfg := poller.DefaultConfig()

	if err := config.NewConfig(nil, config.EnvPrefix, ".env").Load(ctx, opts.configPath, cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	opts.apply(cfg)

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	// Step 2: logging and telemetry
	setServiceIdentity(&cfg.Logging.OTel)

	if cfg.Telemetry != nil {
		setServiceIdentity(cfg.Telemetry)
	}

	exporterLogger, err := lifecycle.CreateComponentLogger(ctx, "exporter", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		_ = lifecycle.ShutdownLogger(shutdownCtx)
	}()

	tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{Logger: exporterLogger, OTel: cfg.Telemetry})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	defer shutdownTracing(tp, exporterLogger)

	// Step 3: sinks
	registry := prometheus.NewRegistry()

	if err := registry.Register(version.NewCollector(metricsPrefix)); err != nil {
		return err
	}

	promSink, err := metrics.NewPrometheusSink(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	sinks := metrics.MultiSink{promSink}

	otelSink, err := newOTelSink(ctx, cfg, exporterLogger)
	if err != nil {
		return err
	}

	if otelSink != nil {
		defer func() { _ = otelSink.Close() }()

		sinks = append(sinks, otelSink)
	}

	// Step 4: poller and HTTP server
	client := lantime.NewClient(cfg.ClientConfig())

	p, err := poller.New(cfg, client, sinks, nil, exporterLogger.WithComponent("poller"))
	if err != nil {
		return err
	}

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:  cfg.Address(),
		ServiceName: serviceName,
		Service:     p,
		Logger:      exporterLogger,
		Handler: httpx.NewHandler(httpx.HandlerOptions{
			Gatherer: registry,
			Devices:  p.Devices(),
			Logger:   exporterLogger.WithComponent("http"),
		}),
	})
}

// newOTelSink returns nil when no OTLP metrics endpoint is configured.
func newOTelSink(ctx context.Context, cfg *poller.Config, log logger.Logger) (*metrics.OTelSink, error) {
	provider, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{OTel: cfg.Telemetry})
	if errors.Is(err, logger.ErrOTelMetricsDisabled) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize OTel metrics: %w", err)
	}

	sink, err := metrics.NewOTelSink(provider.Meter(metrics.MeterName))
	if err != nil {
		return nil, err
	}

	log.Info().Str("endpoint", cfg.Telemetry.Endpoint).Msg("Exporting metrics over OTLP")

	return sink, nil
}

func setServiceIdentity(c *logger.OTelConfig) {
	if c.ServiceName == "" {
		c.ServiceName = serviceName
	}

	if c.ServiceVersion == "" {
		c.ServiceVersion = version.GetVersion()
	}
}

func shutdownTracing(tp *sdktrace.TracerProvider, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := tp.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to shut down tracer provider")
	}
}
