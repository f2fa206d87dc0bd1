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
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carverauto/lantime-exporter/pkg/logger"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		write     bool
		wantLevel string
	}{
		{name: "implicit ok", status: http.StatusOK, write: false, wantLevel: "debug"},
		{name: "not found", status: http.StatusNotFound, write: true, wantLevel: "debug"},
		{name: "server error", status: http.StatusServiceUnavailable, write: true, wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			handler := LoggingMiddleware(logger.NewWithWriter(&buf, zerolog.DebugLevel))(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					if tt.write {
						w.WriteHeader(tt.status)
					}

					_, _ = w.Write([]byte("body"))
				}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("expected %s level in %q", tt.wantLevel, out)
			}

			if !strings.Contains(out, `"path":"/metrics"`) {
				t.Errorf("expected path in %q", out)
			}
		})
	}
}

func TestLoggingMiddlewareQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer

	handler := LoggingMiddleware(logger.NewWithWriter(&buf, zerolog.InfoLevel))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
