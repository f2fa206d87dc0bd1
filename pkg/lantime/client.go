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

//go:generate mockgen -destination=mock_lantime.go -package=lantime github.com/carverauto/lantime-exporter/pkg/lantime Fetcher

package lantime

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultRequestTimeout = 5 * time.Second
	maxDocumentBytes      = 8 << 20
	userAgent             = "lantime-exporter"
)

// Fetcher retrieves the raw status document of a device.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Value, error)
}

// ClientConfig configures the HTTP status client.
type ClientConfig struct {
	Username           string
	Password           string
	Timeout            time.Duration
	InsecureSkipVerify bool
	// HTTPClient overrides the client built from the other options.
	HTTPClient *http.Client
}

// Client fetches LANTIME status documents over the REST API.
type Client struct {
	http     *http.Client
	username string
	password string
	timeout  time.Duration
}

var _ Fetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: true, //nolint:gosec // opt-in for self-signed device certificates
			}
		}

		httpClient = &http.Client{Transport: transport}
	}

	return &Client{
		http:     httpClient,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  timeout,
	}
}

// Fetch performs a single GET against url and decodes the body.
func (c *Client) Fetch(ctx context.Context, url string) (Value, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Null, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Null, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentBytes))

		return Null, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return Null, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) > maxDocumentBytes {
		return Null, ErrDocumentTooLarge
	}

	return Parse(body)
}

// StatusError reports a non-2xx response from a device.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpectedStatus.Error(), e.Status)
}

func (*StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Temporary reports whether retrying the request could succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}
