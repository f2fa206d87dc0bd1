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

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDuration time.Duration

type testTLS struct {
	CAFile string `json:"ca_file"`
}

type testLogging struct {
	Level string            `json:"level"`
	Debug bool              `json:"debug"`
	TLS   *testTLS          `json:"tls,omitempty"`
	Tags  map[string]string `json:"tags"`
}

type testDevice struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type testConfig struct {
	URLs     []string      `json:"urls"`
	Devices  []testDevice  `json:"devices"`
	Username string        `json:"username"`
	Interval int           `json:"interval"`
	Ratio    float64       `json:"ratio"`
	Timeout  testDuration  `json:"request_timeout"`
	Wait     time.Duration `json:"wait"`
	Logging  *testLogging  `json:"logging,omitempty"`
	Ignored  string        `json:"-"`
	private  string
}

func TestEnvConfigLoaderScalars(t *testing.T) {
	t.Setenv("TEST_USERNAME", "admin")
	t.Setenv("TEST_INTERVAL", "30")
	t.Setenv("TEST_RATIO", "0.5")
	t.Setenv("TEST_REQUEST_TIMEOUT", "2s")
	t.Setenv("TEST_WAIT", "1m")

	cfg := testConfig{Username: "default", Interval: 10}

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, 30, cfg.Interval)
	assert.InDelta(t, 0.5, cfg.Ratio, 1e-9)
	assert.Equal(t, testDuration(2*time.Second), cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.Wait)
	assert.Nil(t, cfg.Logging, "nested pointers stay nil without matching variables")
}

func TestEnvConfigLoaderShellSplitsStringSlices(t *testing.T) {
	t.Setenv("TEST_URLS", `ntp01:https://ntp01.example.com/api/ "ntp 02:http://ntp02.example.com/api/"`)

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, []string{
		"ntp01:https://ntp01.example.com/api/",
		"ntp 02:http://ntp02.example.com/api/",
	}, cfg.URLs)
}

func TestEnvConfigLoaderJSONValues(t *testing.T) {
	t.Setenv("TEST_URLS", `["a:http://a/", "b:http://b/"]`)
	t.Setenv("TEST_DEVICES", `[{"name": "ntp01", "url": "https://ntp01.example.com/api/"}]`)
	t.Setenv("TEST_LOGGING_TAGS", `{"site": "lab"}`)

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, []string{"a:http://a/", "b:http://b/"}, cfg.URLs)
	assert.Equal(t, []testDevice{{Name: "ntp01", URL: "https://ntp01.example.com/api/"}}, cfg.Devices)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, map[string]string{"site": "lab"}, cfg.Logging.Tags)
	assert.Nil(t, cfg.Logging.TLS)
}

func TestEnvConfigLoaderNestedStruct(t *testing.T) {
	t.Setenv("TEST_LOGGING_LEVEL", "debug")
	t.Setenv("TEST_LOGGING_DEBUG", "true")
	t.Setenv("TEST_LOGGING_TLS_CA_FILE", "/etc/ssl/ca.pem")

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Debug)
	require.NotNil(t, cfg.Logging.TLS)
	assert.Equal(t, "/etc/ssl/ca.pem", cfg.Logging.TLS.CAFile)
}

func TestEnvConfigLoaderConfigJSON(t *testing.T) {
	t.Setenv("TEST_CONFIG_JSON", `{"username": "json", "interval": 60}`)
	t.Setenv("TEST_INTERVAL", "15")

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "json", cfg.Username)
	assert.Equal(t, 15, cfg.Interval, "individual variables override CONFIG_JSON")
}

func TestEnvConfigLoaderInvalidValues(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "often")
	t.Setenv("TEST_USERNAME", "still-applied")

	cfg := testConfig{Interval: 10}

	err := NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_INTERVAL")
	assert.Equal(t, 10, cfg.Interval)
	assert.Equal(t, "still-applied", cfg.Username)
}

func TestEnvConfigLoaderRejectsNonStruct(t *testing.T) {
	loader := NewEnvConfigLoader(nil, "TEST_")

	var s string

	require.ErrorIs(t, loader.Load(context.Background(), "", s), ErrDstMustBeNonNilPointer)
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
}
