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

import "github.com/carverauto/lantime-exporter/pkg/lantime"

// LabelServer carries the configured device name on every series.
const LabelServer = "server"

// infoField is exported as a constant 1 series whose extra label holds the text value.
type infoField struct {
	name  string
	help  string
	label string
	value func(*lantime.Snapshot) string
}

type gaugeField struct {
	name  string
	help  string
	value func(*lantime.Snapshot) float64
}

var infoFields = []infoField{
	{"version", "System version", "version",
		func(s *lantime.Snapshot) string { return s.Version }},
	{"serial_number", "Serial number", "serial",
		func(s *lantime.Snapshot) string { return s.SerialNumber }},
	{"model", "Meinberg LANTIME model", "model",
		func(s *lantime.Snapshot) string { return s.Model }},
	{"hostname", "Hostname", "hostname",
		func(s *lantime.Snapshot) string { return s.Hostname }},
	{"firmware_version", "Running firmware version", "firmware_version",
		func(s *lantime.Snapshot) string { return s.FirmwareVersion }},
	{"position", "GPS position", "position",
		func(s *lantime.Snapshot) string { return s.Position }},
	{"est_time_quality", "Estimated time quality", "est_time_quality",
		func(s *lantime.Snapshot) string { return s.EstTimeQuality }},
	{"clock_status", "Status of the clock signal", "clock_status",
		func(s *lantime.Snapshot) string { return s.ClockStatus }},
	{"osc_status", "Status of the oscillator", "osc_status",
		func(s *lantime.Snapshot) string { return s.OscillatorStatus }},
	{"receiver_status", "Status of the GNSS receiver", "receiver_status",
		func(s *lantime.Snapshot) string { return s.ReceiverStatus }},
}

var gaugeFields = []gaugeField{
	{"cpu_load_1m", "Average CPU load over the past minute",
		func(s *lantime.Snapshot) float64 { return s.CPULoad1 }},
	{"cpu_load_5m", "Average CPU load over the past 5 minutes",
		func(s *lantime.Snapshot) float64 { return s.CPULoad5 }},
	{"cpu_load_15m", "Average CPU load over the past 15 minutes",
		func(s *lantime.Snapshot) float64 { return s.CPULoad15 }},
	{"memory_total_kilobytes", "Total amount of installed memory",
		func(s *lantime.Snapshot) float64 { return s.MemoryTotalKB }},
	{"memory_free_kilobytes", "Amount of free memory",
		func(s *lantime.Snapshot) float64 { return s.MemoryFreeKB }},
	{"uptime_seconds", "Time since last boot",
		func(s *lantime.Snapshot) float64 { return s.UptimeSeconds }},
	{"time_since_last_config_change_seconds", "Time since last config change",
		func(s *lantime.Snapshot) float64 { return s.LastConfigChangeSeconds }},
	{"satellites_in_view_total", "Number of satellites in view",
		func(s *lantime.Snapshot) float64 { return s.SatellitesInView }},
	{"good_satellites_total", "Number of usable satellites in view",
		func(s *lantime.Snapshot) float64 { return s.GoodSatellites }},
	{"gps_satellites_in_use_total", "Number of GPS satellites in use",
		func(s *lantime.Snapshot) float64 { return s.GPSSatellitesInUse }},
	{"galileo_satellites_in_use_total", "Number of Galileo satellites in use",
		func(s *lantime.Snapshot) float64 { return s.GalileoSatellitesInUse }},
}
