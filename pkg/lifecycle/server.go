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

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/lantime-exporter/pkg/logger"
)

const (
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

var errServiceRequired = errors.New("lifecycle: service is required")

// Service is a background component started before the HTTP listener and stopped after it.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type ServerOptions struct {
	ListenAddr      string
	ServiceName     string
	Service         Service
	Handler         http.Handler
	Logger          logger.Logger
	ShutdownTimeout time.Duration

	// Listener overrides ListenAddr, mainly for tests.
	Listener net.Listener
}

// RunServer starts the service and serves HTTP until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the listener fails. It then drains the HTTP server and stops
// the service.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	if opts.Service == nil {
		return errServiceRequired
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener := opts.Listener
	if listener == nil {
		var err error

		listener, err = net.Listen("tcp", opts.ListenAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.ListenAddr, err)
		}
	}

	if err := opts.Service.Start(ctx); err != nil {
		_ = listener.Close()

		return fmt.Errorf("failed to start %s: %w", opts.ServiceName, err)
	}

	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("service", opts.ServiceName).
			Str("addr", listener.Addr().String()).
			Msg("HTTP server listening")

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Str("service", opts.ServiceName).Msg("Shutting down")

		timeout := opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error

		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}

		if err := opts.Service.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", opts.ServiceName, err))
		}

		return errors.Join(errs...)
	})

	return g.Wait()
}
