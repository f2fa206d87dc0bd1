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

package logger

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type TracingConfig struct {
	Logger Logger
	OTel   *OTelConfig
}

// InitializeTracing installs a global TracerProvider. Spans are exported only when an
// OTLP endpoint is enabled; otherwise they are recorded and dropped, which still gives
// log lines valid trace ids. The caller owns the provider and must shut it down.
func InitializeTracing(ctx context.Context, config TracingConfig) (*sdktrace.TracerProvider, error) {
	otelConfig := config.OTel
	if otelConfig == nil {
		otelConfig = &OTelConfig{}
	}

	res, err := otelConfig.resource(ctx)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if otelConfig.Enabled && otelConfig.Endpoint != "" {
		exporter, err := newTraceExporter(ctx, otelConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if config.Logger != nil {
		config.Logger.Debug().
			Str("service", otelConfig.serviceName()).
			Bool("exporting", otelConfig.Enabled && otelConfig.Endpoint != "").
			Msg("Initialized OpenTelemetry tracing")
	}

	return tp, nil
}

// GetTracer returns a named tracer from the global provider.
func GetTracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func newTraceExporter(ctx context.Context, config *OTelConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(config.Endpoint)}

	creds, err := config.credentials()
	if err != nil {
		return nil, err
	}

	switch {
	case config.Insecure:
		opts = append(opts, otlptracegrpc.WithInsecure())
	case creds != nil:
		opts = append(opts, otlptracegrpc.WithTLSCredentials(creds))
	}

	if len(config.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(config.Headers))
	}

	return otlptracegrpc.New(ctx, opts...)
}
