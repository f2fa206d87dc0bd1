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
	"fmt"
	"strconv"
	"time"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
	"github.com/carverauto/lantime-exporter/pkg/logger"
)

const (
	DefaultInterval       = 10
	DefaultPort           = 3000
	DefaultRequestTimeout = 5 * time.Second
	DefaultRetries        = 2
	DefaultConcurrency    = 4

	maxPort = 65535
)

// Config is the exporter configuration. URLs holds "name:url" specs as given on the
// command line; Devices holds the same information in structured form. Both are merged.
type Config struct {
	URLs               []string           `json:"urls"`
	Devices            []lantime.Device   `json:"devices,omitempty"`
	Username           string             `json:"username"`
	Password           string             `json:"password"`
	Interval           int                `json:"interval"` // seconds
	Port               int                `json:"port"`
	ListenAddr         string             `json:"listen_addr"`
	RequestTimeout     logger.Duration    `json:"request_timeout"`
	Retries            int                `json:"retries"`
	Concurrency        int                `json:"concurrency"`
	InsecureSkipVerify bool               `json:"insecure_skip_verify"`
	Logging            *logger.Config     `json:"logging,omitempty"`
	Telemetry          *logger.OTelConfig `json:"telemetry,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Interval:       DefaultInterval,
		Port:           DefaultPort,
		RequestTimeout: logger.Duration(DefaultRequestTimeout),
		Retries:        DefaultRetries,
		Concurrency:    DefaultConcurrency,
		Logging:        logger.DefaultConfig(),
	}
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	if c.Interval < 1 {
		return ErrInvalidInterval
	}

	if c.Port < 1 || c.Port > maxPort {
		return ErrInvalidPort
	}

	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Retries < 0 {
		return ErrInvalidRetries
	}

	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if _, err := c.ResolveDevices(); err != nil {
		return err
	}

	return nil
}

// PollInterval returns the configured interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// Address returns the HTTP listen address, derived from Port unless set explicitly.
func (c *Config) Address() string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}

	return ":" + strconv.Itoa(c.Port)
}

// ResolveDevices parses URLs and merges them with Devices, in that order. Names must be
// unique across both lists.
func (c *Config) ResolveDevices() ([]lantime.Device, error) {
	devices := make([]lantime.Device, 0, len(c.URLs)+len(c.Devices))

	for _, spec := range c.URLs {
		d, err := lantime.ParseDevice(spec)
		if err != nil {
			return nil, err
		}

		devices = append(devices, d)
	}

	for _, d := range c.Devices {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		devices = append(devices, d)
	}

	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	seen := make(map[string]struct{}, len(devices))

	for _, d := range devices {
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDevice, d.Name)
		}

		seen[d.Name] = struct{}{}
	}

	return devices, nil
}

// ClientConfig returns the HTTP client settings shared by all devices.
func (c *Config) ClientConfig() lantime.ClientConfig {
	return lantime.ClientConfig{
		Username:           c.Username,
		Password:           c.Password,
		Timeout:            time.Duration(c.RequestTimeout),
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
}
