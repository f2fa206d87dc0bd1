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

package poller

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
	"github.com/carverauto/lantime-exporter/pkg/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.PollInterval())
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, logger.Duration(5*time.Second), cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 4, cfg.Concurrency)
	require.ErrorIs(t, cfg.Validate(), ErrNoDevices)
}

func TestDefaultConfigCarriesLoggingDefaults(t *testing.T) {
	t.Setenv("LOG_OUTPUT", "stderr")
	t.Setenv("OTEL_LOGS_ENABLED", "true")

	cfg := DefaultConfig()

	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.True(t, cfg.Logging.OTel.Enabled)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantErr: ErrInvalidInterval},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: ErrInvalidPort},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative retries", mutate: func(c *Config) { c.Retries = -1 }, wantErr: ErrInvalidRetries},
		{name: "no retries", mutate: func(c *Config) { c.Retries = 0 }},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "bad spec", mutate: func(c *Config) { c.URLs = []string{"ntp01"} }, wantErr: lantime.ErrInvalidDeviceSpec},
		{name: "bad scheme", mutate: func(c *Config) { c.URLs = []string{"ntp01:ftp://x/"} }, wantErr: lantime.ErrInvalidDeviceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("ntp01:" + ntp01URL)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveDevices(t *testing.T) {
	cfg := testConfig("ntp01:" + ntp01URL)
	cfg.Devices = []lantime.Device{ntp02}

	devices, err := cfg.ResolveDevices()
	require.NoError(t, err)
	assert.Equal(t, []lantime.Device{ntp01, ntp02}, devices)

	cfg.Devices = append(cfg.Devices, lantime.Device{Name: "ntp01", URL: "http://other.example.com/"})

	_, err = cfg.ResolveDevices()
	require.ErrorIs(t, err, ErrDuplicateDevice)
}

func TestConfigAddressOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 9100

	assert.Equal(t, ":9100", cfg.Address())

	cfg.ListenAddr = "127.0.0.1:9200"
	assert.Equal(t, "127.0.0.1:9200", cfg.Address())
}

func TestConfigJSON(t *testing.T) {
	cfg := DefaultConfig()

	err := json.Unmarshal([]byte(`{
		"urls": ["ntp01:https://ntp01.example.com/api/status"],
		"devices": [{"name": "ntp02", "url": "http://ntp02.example.com/api/status"}],
		"interval": 30,
		"request_timeout": "2s",
		"logging": {"level": "debug"}
	}`), cfg)
	require.NoError(t, err)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.Equal(t, logger.Duration(2*time.Second), cfg.RequestTimeout)
	assert.Equal(t, 3000, cfg.Port, "unset keys keep their defaults")
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)

	client := cfg.ClientConfig()
	assert.Equal(t, 2*time.Second, client.Timeout)
}
