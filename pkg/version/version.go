// Package version provides build information for the exporter.
package version

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// These variables are set via ldflags during build
//
//nolint:gochecknoglobals // These are intentionally global for ldflags injection
var (
	version = "dev"
	buildID = "dev"
)

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// GetBuildID returns the current build ID
func GetBuildID() string {
	return buildID
}

// GetFullVersion returns version with build ID
func GetFullVersion() string {
	return version + " (build: " + buildID + ")"
}

// NewCollector returns a constant <namespace>_build_info gauge labelled with the
// version, build id and Go version.
func NewCollector(namespace string) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "A metric with a constant '1' value labeled by version, build id and Go version.",
		ConstLabels: prometheus.Labels{
			"version":   version,
			"build_id":  buildID,
			"goversion": runtime.Version(),
		},
	}, func() float64 { return 1 })
}
