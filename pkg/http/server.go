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

package http

import (
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/lantime-exporter/pkg/lantime"
	"github.com/carverauto/lantime-exporter/pkg/logger"
	"github.com/carverauto/lantime-exporter/pkg/version"
)

const (
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head><title>LANTIME Exporter</title></head>
<body>
<h1>LANTIME Exporter</h1>
<p>Version {{.Version}}</p>
<p><a href="{{.MetricsPath}}">Metrics</a></p>
<h2>Devices</h2>
<ul>
{{- range .Devices}}
<li>{{.}}</li>
{{- end}}
</ul>
</body>
</html>
`))

type HandlerOptions struct {
	Gatherer prometheus.Gatherer
	Devices  []lantime.Device
	Logger   logger.Logger
}

// NewHandler builds the exporter's HTTP routes.
func NewHandler(opts HandlerOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	mux := http.NewServeMux()

	mux.Handle(MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))

	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		data := struct {
			Version     string
			MetricsPath string
			Devices     []lantime.Device
		}{version.GetFullVersion(), MetricsPath, opts.Devices}

		if err := landingTemplate.Execute(w, data); err != nil {
			log.Error().Err(err).Msg("Failed to render landing page")
		}
	})

	return LoggingMiddleware(log)(mux)
}
