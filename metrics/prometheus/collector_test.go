package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/henkan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ henkan.MetricsCollector = (*Collector)(nil)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordConvert(4, 12, 2*time.Millisecond)
	c.RecordConvert(2, 8, time.Millisecond)
	c.RecordLoad("person_name", 30*time.Millisecond, nil)
	c.RecordLoad("web", time.Millisecond, errors.New("boom"))
	c.RecordRelease("person_name")

	assert.Equal(t, 1, testutil.CollectAndCount(c.convertLatency))
	assert.Equal(t, 2, testutil.CollectAndCount(c.loads))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loads.WithLabelValues("person_name", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loads.WithLabelValues("web", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.releases.WithLabelValues("person_name")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.loaded.WithLabelValues("person_name")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "henkan_convert_latency_seconds")
	assert.Contains(t, names, "henkan_dictionary_loads_total")
}
