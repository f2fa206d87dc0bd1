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

import (
	"fmt"
	"net/url"
	"strings"
)

// Device identifies one LANTIME server. Name is used as the "server" label on every
// series exported for the device.
type Device struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ParseDevice parses a "name:url" pair, e.g. "ntp01:https://ntp01.example.com/api/status".
// The name ends at the first colon.
func ParseDevice(spec string) (Device, error) {
	name, rawURL, found := strings.Cut(strings.TrimSpace(spec), ":")
	if !found {
		return Device{}, fmt.Errorf("%w %q: expected name:url", ErrInvalidDeviceSpec, spec)
	}

	d := Device{Name: strings.TrimSpace(name), URL: strings.TrimSpace(rawURL)}
	if err := d.Validate(); err != nil {
		return Device{}, err
	}

	return d, nil
}

// Validate checks that the device has a name and an absolute http(s) URL.
func (d Device) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: device name is empty", ErrInvalidDeviceSpec)
	}

	if d.URL == "" {
		return fmt.Errorf("%w %s: %w", ErrInvalidDeviceSpec, d.Name, errEmptyURL)
	}

	u, err := url.Parse(d.URL)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidDeviceSpec, d.Name, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w %s: unsupported scheme %q", ErrInvalidDeviceSpec, d.Name, u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("%w %s: url has no host", ErrInvalidDeviceSpec, d.Name)
	}

	return nil
}

// RedactedURL returns URL with any password replaced, for logs and pages.
func (d Device) RedactedURL() string {
	u, err := url.Parse(d.URL)
	if err != nil {
		return ""
	}

	return u.Redacted()
}

// String renders "name (url)" with the URL password redacted.
func (d Device) String() string {
	return d.Name + " (" + d.RedactedURL() + ")"
}
