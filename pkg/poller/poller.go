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

// Package poller periodically fetches every configured LANTIME device and hands the
// projected snapshots to a metrics sink.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
	"github.com/carverauto/lantime-exporter/pkg/logger"
	"github.com/carverauto/lantime-exporter/pkg/metrics"
)

const (
	tracerName   = "github.com/carverauto/lantime-exporter/pkg/poller"
	pollSpanName = "lantime.poll"

	initialRetryInterval = 500 * time.Millisecond
	maxRetryInterval     = 5 * time.Second
)

// Poller runs one poll cycle immediately on Start and then one per interval. Cycles
// never overlap: a cycle that outlasts the interval delays the next tick.
type Poller struct {
	config   *Config
	devices  []lantime.Device
	interval time.Duration

	fetcher  lantime.Fetcher
	sink     metrics.Sink
	observer metrics.PollObserver
	clock    Clock
	logger   logger.Logger
	tracer   trace.Tracer

	newBackOff func() backoff.BackOff

	cycleMu   sync.Mutex
	started   atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New validates config and builds a Poller. When sink also implements
// metrics.PollObserver it is told about every poll outcome.
func New(config *Config, fetcher lantime.Fetcher, sink metrics.Sink, clock Clock, log logger.Logger) (*Poller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if fetcher == nil {
		return nil, errFetcherRequired
	}

	if sink == nil {
		return nil, errSinkRequired
	}

	devices, err := config.ResolveDevices()
	if err != nil {
		return nil, err
	}

	if clock == nil {
		clock = realClock{}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	observer, _ := sink.(metrics.PollObserver)

	return &Poller{
		config:     config,
		devices:    devices,
		interval:   config.PollInterval(),
		fetcher:    fetcher,
		sink:       sink,
		observer:   observer,
		clock:      clock,
		logger:     log,
		tracer:     logger.GetTracer(tracerName),
		newBackOff: defaultBackOff,
		done:       make(chan struct{}),
	}, nil
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialRetryInterval
	bo.MaxInterval = maxRetryInterval

	return bo
}

// Devices returns the devices polled every cycle.
func (p *Poller) Devices() []lantime.Device {
	return p.devices
}

// Start launches the poll loop in the background and returns immediately.
func (p *Poller) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ctx, p.cancel = context.WithCancel(ctx)

	for _, d := range p.devices {
		p.logger.Info().Str("device", d.Name).Msgf("Initialized collector for %s", d)
	}

	p.logger.Info().
		Dur("interval", p.interval).
		Int("devices", len(p.devices)).
		Msg("Starting poller")

	p.wg.Add(1)

	go p.run(ctx)

	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := p.clock.Ticker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.Chan():
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	if err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
		p.logger.Debug().Err(err).Msg("Poll cycle finished with failures")
	}
}

// Stop ends the poll loop, cancelling any cycle in flight, and waits for it to exit
// or for ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.closeOnce.Do(func() {
		close(p.done)

		if p.cancel != nil {
			p.cancel()
		}
	})

	stopped := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		p.logger.Info().Msg("Poller stopped")

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PollOnce polls every device, at most config.Concurrency at a time. A device that
// fails is skipped for this cycle; the returned error only summarises the failures.
func (p *Poller) PollOnce(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	var (
		g      errgroup.Group
		failed atomic.Int32
	)

	g.SetLimit(p.config.Concurrency)

	for _, device := range p.devices {
		g.Go(func() error {
			if err := p.pollDevice(ctx, device); err != nil {
				failed.Add(1)
			}

			return nil
		})
	}

	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d of %d devices", ErrPollFailed, n, len(p.devices))
	}

	return nil
}

func (p *Poller) pollDevice(ctx context.Context, device lantime.Device) error {
	ctx, span := p.tracer.Start(ctx, pollSpanName, trace.WithAttributes(
		attribute.String("lantime.device", device.Name),
		attribute.String("url.full", device.RedactedURL()),
	))
	defer span.End()

	start := p.clock.Now()
	doc, err := p.fetch(ctx, device)
	elapsed := p.clock.Now().Sub(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")

		p.observe(device, elapsed, err)
		p.logger.Warn().
			Err(err).
			Str("device", device.Name).
			Str("url", device.RedactedURL()).
			Msg("Failed to query REST API")

		return err
	}

	snap := lantime.Project(doc, device)
	p.sink.Apply(&snap)
	p.observe(device, elapsed, nil)

	p.logger.Info().
		Str("device", device.Name).
		Dur("duration", elapsed).
		Msg("Updated metrics")

	return nil
}

func (p *Poller) observe(device lantime.Device, elapsed time.Duration, err error) {
	if p.observer != nil {
		p.observer.ObservePoll(device, elapsed, err)
	}
}

// fetch retries transient failures with exponential backoff, giving up after the
// configured number of retries or once a full interval has passed.
func (p *Poller) fetch(ctx context.Context, device lantime.Device) (lantime.Value, error) {
	operation := func() (lantime.Value, error) {
		doc, err := p.fetcher.Fetch(ctx, device.URL)
		if err != nil && !retryable(err) {
			return lantime.Null, backoff.Permanent(err)
		}

		return doc, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(uint(p.config.Retries)+1), //nolint:gosec // validated non-negative
		backoff.WithMaxElapsedTime(p.interval),
		backoff.WithNotify(func(err error, next time.Duration) {
			p.logger.Debug().
				Err(err).
				Str("device", device.Name).
				Dur("retry_in", next).
				Msg("Retrying device poll")
		}),
	)
}

// retryable reports whether a fetch error may succeed on a later attempt. Client
// errors and undecodable documents are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *lantime.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	return !errors.Is(err, lantime.ErrDecodeDocument) && !errors.Is(err, lantime.ErrDocumentTooLarge)
}
