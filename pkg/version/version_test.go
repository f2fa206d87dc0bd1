package version

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFullVersion(t *testing.T) {
	assert.Equal(t, GetVersion()+" (build: "+GetBuildID()+")", GetFullVersion())
}

func TestNewCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector("lantime_exporter")))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	mf := families[0]
	assert.Equal(t, "lantime_exporter_build_info", mf.GetName())
	require.Len(t, mf.GetMetric(), 1)

	labels := map[string]string{}
	for _, lp := range mf.GetMetric()[0].GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}

	assert.Equal(t, "dev", labels["version"])
	assert.Equal(t, "dev", labels["build_id"])
	assert.NotEmpty(t, labels["goversion"])
	assert.InDelta(t, 1.0, testutil.ToFloat64(NewCollector("x")), 1e-9)
}
