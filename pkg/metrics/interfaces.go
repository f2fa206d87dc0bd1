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

// Package metrics republishes lantime snapshots as Prometheus and OpenTelemetry metrics.
package metrics

import (
	"time"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
)

//go:generate mockgen -destination=mock_metrics.go -package=metrics github.com/carverauto/lantime-exporter/pkg/metrics Sink,PollObserver

// Sink receives every successfully projected snapshot. Implementations must be safe
// for concurrent use; the poller applies snapshots of different devices in parallel.
type Sink interface {
	Apply(snap *lantime.Snapshot)
}

// PollObserver records the outcome of one device poll. err is nil on success.
type PollObserver interface {
	ObservePoll(device lantime.Device, duration time.Duration, err error)
}
