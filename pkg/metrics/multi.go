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
	"time"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
)

// MultiSink fans snapshots and poll outcomes out to every member. Members that do
// not implement PollObserver only receive snapshots.
type MultiSink []Sink

var (
	_ Sink         = MultiSink(nil)
	_ PollObserver = MultiSink(nil)
)

func (m MultiSink) Apply(snap *lantime.Snapshot) {
	for _, s := range m {
		s.Apply(snap)
	}
}

func (m MultiSink) ObservePoll(device lantime.Device, duration time.Duration, err error) {
	for _, s := range m {
		if o, ok := s.(PollObserver); ok {
			o.ObservePoll(device, duration, err)
		}
	}
}
