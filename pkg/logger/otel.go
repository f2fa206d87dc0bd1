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
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.31.0"
	"google.golang.org/grpc/credentials"
)

var (
	ErrOTelLoggingDisabled  = errors.New("OTel logging is disabled")
	ErrOTelEndpointRequired = errors.New("OTel endpoint is required when enabled")
	errFailedToParseCACert  = errors.New("failed to parse CA certificate")
)

const (
	defaultScope            = "lantime-exporter"
	maxAttributeValueLength = 4096
	shutdownTimeout         = 10 * time.Second
)

// OTelConfig describes the OTLP/gRPC collector shared by logs, metrics and traces.
type OTelConfig struct {
	Enabled        bool              `json:"enabled" yaml:"enabled"`
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	ServiceName    string            `json:"service_name" yaml:"service_name"`
	ServiceVersion string            `json:"service_version,omitempty" yaml:"service_version,omitempty"`
	BatchTimeout   Duration          `json:"batch_timeout" yaml:"batch_timeout"`
	Insecure       bool              `json:"insecure" yaml:"insecure"`
	TLS            *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	CAFile   string `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
}

func (c *OTelConfig) serviceName() string {
	if c.ServiceName == "" {
		return defaultServiceName
	}

	return c.ServiceName
}

func (c *OTelConfig) serviceVersion() string {
	if c.ServiceVersion == "" {
		return "dev"
	}

	return c.ServiceVersion
}

func (c *OTelConfig) resource(ctx context.Context) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(c.serviceName()),
			semconv.ServiceVersion(c.serviceVersion()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}

// credentials returns the transport credentials for a TLS collector, or nil when the
// connection is insecure or uses the system defaults.
func (c *OTelConfig) credentials() (credentials.TransportCredentials, error) {
	if c.Insecure || c.TLS == nil {
		return nil, nil
	}

	tlsConfig, err := setupTLSConfig(c.TLS)
	if err != nil {
		return nil, fmt.Errorf("failed to setup TLS configuration: %w", err)
	}

	return credentials.NewTLS(tlsConfig), nil
}

// OTelWriter is an io.Writer that turns zerolog JSON lines into OTLP log records.
// Each distinct "component" field gets its own instrumentation scope.
type OTelWriter struct {
	ctx      context.Context
	provider *sdklog.LoggerProvider

	mu      sync.Mutex
	loggers map[string]otellog.Logger
}

var (
	otelMu       sync.Mutex
	otelProvider *sdklog.LoggerProvider
)

func NewOTELWriter(ctx context.Context, config OTelConfig) (*OTelWriter, error) {
	if !config.Enabled {
		return nil, ErrOTelLoggingDisabled
	}

	if config.Endpoint == "" {
		return nil, ErrOTelEndpointRequired
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(config.Endpoint)}

	creds, err := config.credentials()
	if err != nil {
		return nil, err
	}

	switch {
	case config.Insecure:
		opts = append(opts, otlploggrpc.WithInsecure())
	case creds != nil:
		opts = append(opts, otlploggrpc.WithTLSCredentials(creds))
	}

	if len(config.Headers) > 0 {
		opts = append(opts, otlploggrpc.WithHeaders(config.Headers))
	}

	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	res, err := config.resource(ctx)
	if err != nil {
		return nil, err
	}

	batchTimeout := time.Duration(config.BatchTimeout)
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(batchTimeout))),
	)

	otelMu.Lock()
	otelProvider = provider
	otelMu.Unlock()

	global.SetLoggerProvider(provider)

	return &OTelWriter{
		ctx:      ctx,
		provider: provider,
		loggers:  make(map[string]otellog.Logger),
	}, nil
}

func (w *OTelWriter) Write(p []byte) (int, error) {
	if w.provider == nil {
		return len(p), nil
	}

	entry := make(map[string]interface{})
	if err := json.Unmarshal(p, &entry); err != nil {
		return len(p), nil
	}

	record := otellog.Record{}

	if ts, ok := entry["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			record.SetTimestamp(parsed)
			delete(entry, "time")
		}
	}

	if level, ok := entry["level"].(string); ok {
		record.SetSeverity(severity(level))
		record.SetSeverityText(level)
		delete(entry, "level")
	}

	if msg, ok := entry["message"].(string); ok {
		record.SetBody(otellog.StringValue(msg))
		delete(entry, "message")
	}

	scope := defaultScope
	if component, ok := entry["component"].(string); ok && component != "" {
		scope = component
		delete(entry, "component")
	}

	for key, value := range entry {
		record.AddAttributes(otellog.String(key, attributeValue(value)))
	}

	w.scopeLogger(scope).Emit(w.ctx, record)

	return len(p), nil
}

func (w *OTelWriter) scopeLogger(scope string) otellog.Logger {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.loggers[scope]
	if !ok {
		l = w.provider.Logger(scope)
		w.loggers[scope] = l
	}

	return l
}

// attributeValue renders a decoded JSON field as a string attribute, truncated to
// maxAttributeValueLength bytes on a rune boundary.
func attributeValue(value interface{}) string {
	var s string

	switch v := value.(type) {
	case nil:
		s = "null"
	case string:
		s = v
	case bool, float64:
		s = fmt.Sprint(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprint(v)
		} else {
			s = string(payload)
		}
	}

	return truncate(s, maxAttributeValueLength)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	const ellipsis = "..."

	cut := s[:limit-len(ellipsis)]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}

	return cut + ellipsis
}

func severity(level string) otellog.Severity {
	switch strings.ToLower(level) {
	case "trace":
		return otellog.SeverityTrace
	case "debug":
		return otellog.SeverityDebug
	case "warn", "warning":
		return otellog.SeverityWarn
	case "error":
		return otellog.SeverityError
	case "fatal", "panic":
		return otellog.SeverityFatal
	default:
		return otellog.SeverityInfo
	}
}

// Shutdown flushes and stops the OTLP log and metric pipelines, if any were started.
func Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	otelMu.Lock()
	provider := otelProvider
	otelProvider = nil
	otelMu.Unlock()

	var errs []error

	if provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("log provider: %w", err))
		}
	}

	if err := shutdownMeterProvider(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter provider: %w", err))
	}

	return errors.Join(errs...)
}

func setupTLSConfig(tlsConfig *TLSConfig) (*tls.Config, error) {
	config := &tls.Config{MinVersion: tls.VersionTLS12}

	if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		config.Certificates = []tls.Certificate{cert}
	}

	if tlsConfig.CAFile != "" {
		caCert, err := os.ReadFile(tlsConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errFailedToParseCACert
		}

		config.RootCAs = pool
	}

	return config, nil
}

// MultiWriter fans a log line out to several writers, stopping at the first failure.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (int, error) {
	for _, w := range mw.writers {
		n, err := w.Write(p)
		if err != nil {
			return n, err
		}

		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}

	return len(p), nil
}
