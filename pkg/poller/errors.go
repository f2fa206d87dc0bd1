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

import "errors"

var (
	ErrNoDevices          = errors.New("no devices configured")
	ErrDuplicateDevice    = errors.New("duplicate device name")
	ErrInvalidInterval    = errors.New("interval must be at least one second")
	ErrInvalidPort        = errors.New("port must be between 1 and 65535")
	ErrInvalidTimeout     = errors.New("request timeout must be positive")
	ErrInvalidRetries     = errors.New("retries must not be negative")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrPollFailed         = errors.New("device poll failed")
	ErrAlreadyStarted     = errors.New("poller already started")
	errFetcherRequired    = errors.New("fetcher is required")
	errSinkRequired       = errors.New("sink is required")
)
