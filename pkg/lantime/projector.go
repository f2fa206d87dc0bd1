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

package lantime

import "strings"

const (
	slotTypeClock = "clk"

	ConstellationGPS     = "gps"
	ConstellationGalileo = "galileo"

	cpuLoadTokens     = 3
	memoryTotalToken  = 0
	memoryFreeToken   = 4
	defaultText       = ""
	defaultNumber     = 0.0
	defaultCPULoadAvg = 0.0
)

// Snapshot is the flat set of metrics extracted from one status document. Every field
// is always set: missing or malformed source data yields "" or 0.
type Snapshot struct {
	Device Device

	Version          string
	SerialNumber     string
	Model            string
	Hostname         string
	FirmwareVersion  string
	Position         string
	EstTimeQuality   string
	ClockStatus      string
	OscillatorStatus string
	ReceiverStatus   string

	CPULoad1                float64
	CPULoad5                float64
	CPULoad15               float64
	MemoryTotalKB           float64
	MemoryFreeKB            float64
	UptimeSeconds           float64
	LastConfigChangeSeconds float64
	SatellitesInView        float64
	GoodSatellites          float64
	GPSSatellitesInUse      float64
	GalileoSatellitesInUse  float64
}

// scope selects the value a field path is resolved against.
type scope uint8

const (
	scopeDocument scope = iota
	scopeClockModule
	scopeCount
)

type textField struct {
	scope    scope
	path     Path
	fallback string
	set      func(*Snapshot, string)
}

type numberField struct {
	scope    scope
	path     Path
	fallback float64
	set      func(*Snapshot, float64)
}

var (
	slotsPath         = ParsePath("data.status.chassis0.slots")
	cpuLoadPath       = ParsePath("data.status.system.cpuload")
	memoryPath        = ParsePath("data.status.system.memory")
	satelliteListPath = ParsePath("satellites.gnss.satellite-list")
)

var textFields = []textField{
	{scopeDocument, ParsePath("system-information.version"), defaultText,
		func(s *Snapshot, v string) { s.Version = v }},
	{scopeDocument, ParsePath("system-information.serial-number"), defaultText,
		func(s *Snapshot, v string) { s.SerialNumber = v }},
	{scopeDocument, ParsePath("system-information.model"), defaultText,
		func(s *Snapshot, v string) { s.Model = v }},
	{scopeDocument, ParsePath("system-information.hostname"), defaultText,
		func(s *Snapshot, v string) { s.Hostname = v }},
	{scopeDocument, ParsePath("data.status.system.position"), defaultText,
		func(s *Snapshot, v string) { s.Position = v }},
	{scopeDocument, ParsePath("data.status.system.firmware.running"), defaultText,
		func(s *Snapshot, v string) { s.FirmwareVersion = v }},
	{scopeClockModule, ParsePath("sync-status.est-time-quality"), defaultText,
		func(s *Snapshot, v string) { s.EstTimeQuality = v }},
	{scopeClockModule, ParsePath("sync-status.clock-status.clock"), defaultText,
		func(s *Snapshot, v string) { s.ClockStatus = v }},
	{scopeClockModule, ParsePath("sync-status.clock-status.oscillator"), defaultText,
		func(s *Snapshot, v string) { s.OscillatorStatus = v }},
	{scopeClockModule, ParsePath("gns.receiver-status"), defaultText,
		func(s *Snapshot, v string) { s.ReceiverStatus = v }},
}

var numberFields = []numberField{
	{scopeDocument, ParsePath("data.status.system.uptime"), defaultNumber,
		func(s *Snapshot, v float64) { s.UptimeSeconds = v }},
	{scopeDocument, ParsePath("data.status.system.last-config-change"), defaultNumber,
		func(s *Snapshot, v float64) { s.LastConfigChangeSeconds = v }},
	{scopeClockModule, ParsePath("satellites.satellites-in-view"), defaultNumber,
		func(s *Snapshot, v float64) { s.SatellitesInView = v }},
	{scopeClockModule, ParsePath("satellites.good-satellites"), defaultNumber,
		func(s *Snapshot, v float64) { s.GoodSatellites = v }},
}

// Project extracts a Snapshot for device from doc. It never fails: each field falls back
// to its default independently, except the CPU load triple which defaults as a group.
// Project keeps no state and may be called concurrently.
func Project(doc Value, device Device) Snapshot {
	snap := Snapshot{Device: device}

	var roots [scopeCount]Value
	roots[scopeDocument] = doc
	roots[scopeClockModule] = ClockModule(doc)

	for i := range textFields {
		f := &textFields[i]

		v, ok := f.path.Lookup(roots[f.scope]).Str()
		if !ok {
			v = f.fallback
		}

		f.set(&snap, v)
	}

	for i := range numberFields {
		f := &numberFields[i]

		v, ok := f.path.Lookup(roots[f.scope]).Float()
		if !ok {
			v = f.fallback
		}

		f.set(&snap, v)
	}

	snap.CPULoad1, snap.CPULoad5, snap.CPULoad15 = parseCPULoad(cpuLoadPath.Lookup(doc))
	snap.MemoryTotalKB, snap.MemoryFreeKB = parseMemory(memoryPath.Lookup(doc))

	satellites := satelliteListPath.Lookup(roots[scopeClockModule])
	snap.GPSSatellitesInUse = float64(CountConstellation(satellites, ConstellationGPS))
	snap.GalileoSatellitesInUse = float64(CountConstellation(satellites, ConstellationGalileo))

	return snap
}

// ClockModule returns the module object of the first chassis slot whose slot-type is
// "clk". When there is no such slot, or it carries no module object, an empty object
// is returned so that every clock-derived field falls back to its default.
func ClockModule(doc Value) Value {
	for _, slot := range slotsPath.Lookup(doc).Items() {
		slotType, _ := slot.Get("slot-type").Str()
		if slotType != slotTypeClock {
			continue
		}

		module := slot.Get("module")
		if module.Kind() != KindObject {
			break
		}

		return module
	}

	return Object(nil)
}

// CountConstellation counts satellite entries whose gnss-type equals tag exactly.
func CountConstellation(satellites Value, tag string) int {
	count := 0

	for _, sat := range satellites.Items() {
		if gnssType, ok := sat.Get("gnss-type").Str(); ok && gnssType == tag {
			count++
		}
	}

	return count
}

// parseCPULoad reads the "1m 5m 15m" load average string. The three values are returned
// together or not at all. Trailing tokens (as in /proc/loadavg) are ignored.
func parseCPULoad(v Value) (load1, load5, load15 float64) {
	raw, ok := v.Str()
	if !ok {
		return defaultCPULoadAvg, defaultCPULoadAvg, defaultCPULoadAvg
	}

	tokens := strings.Fields(raw)
	if len(tokens) < cpuLoadTokens {
		return defaultCPULoadAvg, defaultCPULoadAvg, defaultCPULoadAvg
	}

	var loads [cpuLoadTokens]float64

	for i := 0; i < cpuLoadTokens; i++ {
		f, ok := String(tokens[i]).Float()
		if !ok {
			return defaultCPULoadAvg, defaultCPULoadAvg, defaultCPULoadAvg
		}

		loads[i] = f
	}

	return loads[0], loads[1], loads[2]
}

// parseMemory reads the whitespace separated memory string: token 0 is the total and
// token 4 the free amount, both in kilobytes. Each defaults on its own.
func parseMemory(v Value) (total, free float64) {
	raw, _ := v.Str()
	tokens := strings.Fields(raw)

	return tokenFloat(tokens, memoryTotalToken), tokenFloat(tokens, memoryFreeToken)
}

func tokenFloat(tokens []string, idx int) float64 {
	if idx >= len(tokens) {
		return defaultNumber
	}

	f, ok := String(tokens[idx]).Float()
	if !ok {
		return defaultNumber
	}

	return f
}
