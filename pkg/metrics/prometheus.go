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
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
)

const (
	selfNamespace = "lantime_exporter"
	infoSuffix    = "_info"
)

var pollDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

type infoSeries struct {
	field infoField
	vec   *prometheus.GaugeVec
}

// PrometheusSink keeps one series per device for every snapshot field, plus the
// exporter's own poll health series.
type PrometheusSink struct {
	infos  []infoSeries
	gauges []*prometheus.GaugeVec

	// mu guards current, the last exported label value per info metric and server.
	mu      sync.Mutex
	current []map[string]string

	pollSuccess  *prometheus.GaugeVec
	pollDuration *prometheus.HistogramVec
	pollErrors   *prometheus.CounterVec
	lastSuccess  *prometheus.GaugeVec

	now func() time.Time
}

var (
	_ Sink         = (*PrometheusSink)(nil)
	_ PollObserver = (*PrometheusSink)(nil)
)

// NewPrometheusSink registers all device and self metrics with reg.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		infos:   make([]infoSeries, 0, len(infoFields)),
		gauges:  make([]*prometheus.GaugeVec, 0, len(gaugeFields)),
		current: make([]map[string]string, len(infoFields)),
		now:     time.Now,
	}

	collectors := make([]prometheus.Collector, 0, len(infoFields)+len(gaugeFields)+4)

	for i, f := range infoFields {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: f.name + infoSuffix,
			Help: f.help,
		}, []string{LabelServer, f.label})

		s.infos = append(s.infos, infoSeries{field: f, vec: vec})
		s.current[i] = make(map[string]string)
		collectors = append(collectors, vec)
	}

	for _, f := range gaugeFields {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: f.name,
			Help: f.help,
		}, []string{LabelServer})

		s.gauges = append(s.gauges, vec)
		collectors = append(collectors, vec)
	}

	s.pollSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: selfNamespace,
		Name:      "poll_success",
		Help:      "1 if the last poll of the device succeeded, 0 otherwise",
	}, []string{LabelServer})

	s.pollDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: selfNamespace,
		Name:      "poll_duration_seconds",
		Help:      "Time spent fetching the device status, including retries",
		Buckets:   pollDurationBuckets,
	}, []string{LabelServer})

	s.pollErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: selfNamespace,
		Name:      "poll_errors_total",
		Help:      "Number of failed device polls",
	}, []string{LabelServer})

	s.lastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: selfNamespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful poll of the device",
	}, []string{LabelServer})

	collectors = append(collectors, s.pollSuccess, s.pollDuration, s.pollErrors, s.lastSuccess)

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return s, nil
}

// Apply publishes snap. For info metrics the series carrying a previous label value
// for the same server is removed so each server keeps exactly one series per field.
func (s *PrometheusSink) Apply(snap *lantime.Snapshot) {
	server := snap.Device.Name

	s.mu.Lock()
	for i, info := range s.infos {
		value := info.field.value(snap)

		info.vec.WithLabelValues(server, value).Set(1)

		if prev, ok := s.current[i][server]; ok && prev != value {
			info.vec.DeleteLabelValues(server, prev)
		}

		s.current[i][server] = value
	}
	s.mu.Unlock()

	for i, f := range gaugeFields {
		s.gauges[i].WithLabelValues(server).Set(f.value(snap))
	}
}

func (s *PrometheusSink) ObservePoll(device lantime.Device, duration time.Duration, err error) {
	server := device.Name

	s.pollDuration.WithLabelValues(server).Observe(duration.Seconds())

	if err != nil {
		s.pollSuccess.WithLabelValues(server).Set(0)
		s.pollErrors.WithLabelValues(server).Inc()

		return
	}

	s.pollSuccess.WithLabelValues(server).Set(1)
	s.pollErrors.WithLabelValues(server).Add(0)
	s.lastSuccess.WithLabelValues(server).Set(float64(s.now().Unix()))
}
