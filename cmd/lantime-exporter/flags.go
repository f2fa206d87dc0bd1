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

package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/carverauto/lantime-exporter/pkg/logger"
	"github.com/carverauto/lantime-exporter/pkg/poller"
)

const usageText = `Usage: lantime-exporter [flags] name:url [name:url ...]

Polls the REST status API of Meinberg LANTIME devices and serves the results
as Prometheus metrics. Every flag can also be set with a LANTIME_PROMETHEUS_
prefixed environment variable, and devices with LANTIME_PROMETHEUS_URLS.

Flags:
`

// options holds the raw command line. Only flags that were set explicitly are
// applied on top of the file and environment configuration.
type options struct {
	configPath         string
	username           string
	password           string
	interval           int
	port               int
	listenAddr         string
	requestTimeout     time.Duration
	retries            int
	concurrency        int
	insecureSkipVerify bool
	logLevel           string
	showVersion        bool

	set  map[string]bool
	urls []string
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}

	fs := flag.NewFlagSet("lantime-exporter", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to an optional JSON config file")
	fs.StringVar(&opts.username, "username", "", "Username for the LANTIME REST API")
	fs.StringVar(&opts.password, "password", "", "Password for the LANTIME REST API")
	fs.IntVar(&opts.interval, "interval", poller.DefaultInterval, "Polling interval in seconds")
	fs.IntVar(&opts.port, "port", poller.DefaultPort, "Port to serve metrics on")
	fs.StringVar(&opts.listenAddr, "listen-addr", "", "Listen address, overrides --port")
	fs.DurationVar(&opts.requestTimeout, "request-timeout", poller.DefaultRequestTimeout, "Timeout for one REST request")
	fs.IntVar(&opts.retries, "retries", poller.DefaultRetries, "Additional attempts per device and cycle")
	fs.IntVar(&opts.concurrency, "concurrency", poller.DefaultConcurrency, "Devices polled in parallel")
	fs.BoolVar(&opts.insecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&opts.showVersion, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.urls = fs.Args()

	return opts, nil
}

// apply overlays the explicitly set flags and positional devices onto cfg.
func (o *options) apply(cfg *poller.Config) {
	if o.set["username"] {
		cfg.Username = o.username
	}

	if o.set["password"] {
		cfg.Password = o.password
	}

	if o.set["interval"] {
		cfg.Interval = o.interval
	}

	if o.set["port"] {
		cfg.Port = o.port
	}

	if o.set["listen-addr"] {
		cfg.ListenAddr = o.listenAddr
	}

	if o.set["request-timeout"] {
		cfg.RequestTimeout = logger.Duration(o.requestTimeout)
	}

	if o.set["retries"] {
		cfg.Retries = o.retries
	}

	if o.set["concurrency"] {
		cfg.Concurrency = o.concurrency
	}

	if o.set["insecure-skip-verify"] {
		cfg.InsecureSkipVerify = o.insecureSkipVerify
	}

	if cfg.Logging == nil {
		cfg.Logging = logger.DefaultConfig()
	}

	if o.set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}

	if len(o.urls) > 0 {
		cfg.URLs = o.urls
	}
}
