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

package metrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
)

// MeterName is the instrumentation scope of the OTel sink.
const MeterName = "github.com/carverauto/lantime-exporter/pkg/metrics"

// OTelSink mirrors the Prometheus series as observable gauges. Values are read from
// the latest snapshot of each device when the reader collects.
type OTelSink struct {
	mu     sync.RWMutex
	latest map[string]lantime.Snapshot

	infos        []metric.Int64ObservableGauge
	gauges       []metric.Float64ObservableGauge
	registration metric.Registration
}

var _ Sink = (*OTelSink)(nil)

func NewOTelSink(meter metric.Meter) (*OTelSink, error) {
	s := &OTelSink{
		latest: make(map[string]lantime.Snapshot),
		infos:  make([]metric.Int64ObservableGauge, 0, len(infoFields)),
		gauges: make([]metric.Float64ObservableGauge, 0, len(gaugeFields)),
	}

	observables := make([]metric.Observable, 0, len(infoFields)+len(gaugeFields))

	for _, f := range infoFields {
		g, err := meter.Int64ObservableGauge(f.name+infoSuffix, metric.WithDescription(f.help))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s gauge: %w", f.name, err)
		}

		s.infos = append(s.infos, g)
		observables = append(observables, g)
	}

	for _, f := range gaugeFields {
		g, err := meter.Float64ObservableGauge(f.name, metric.WithDescription(f.help))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s gauge: %w", f.name, err)
		}

		s.gauges = append(s.gauges, g)
		observables = append(observables, g)
	}

	registration, err := meter.RegisterCallback(s.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("failed to register OTel callback: %w", err)
	}

	s.registration = registration

	return s, nil
}

func (s *OTelSink) Apply(snap *lantime.Snapshot) {
	s.mu.Lock()
	s.latest[snap.Device.Name] = *snap
	s.mu.Unlock()
}

func (s *OTelSink) observe(_ context.Context, o metric.Observer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for server := range s.latest {
		snap := s.latest[server]
		serverAttr := attribute.String(LabelServer, server)

		for i, f := range infoFields {
			o.ObserveInt64(s.infos[i], 1,
				metric.WithAttributes(serverAttr, attribute.String(f.label, f.value(&snap))))
		}

		for i, f := range gaugeFields {
			o.ObserveFloat64(s.gauges[i], f.value(&snap), metric.WithAttributes(serverAttr))
		}
	}

	return nil
}

// Close stops the sink from reporting.
func (s *OTelSink) Close() error {
	return s.registration.Unregister()
}
