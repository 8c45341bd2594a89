package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegisterRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { MustRegister(reg) })
	// A counter vector with no labelled child gathers no samples, so touch
	// one child to make the family visible.
	ComparisonsTotal.WithLabelValues("compare_dir", "equal")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["byteq_pool_active_tasks"])
	assert.True(t, names["byteq_pool_queue_length"])
	assert.True(t, names["byteq_comparisons_total"])
}

func TestComparisonsTotalLabelledByKindAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := ComparisonsTotal
	reg.MustRegister(c)

	c.WithLabelValues("compare", "equal").Inc()
	c.WithLabelValues("compare", "different").Inc()
	c.WithLabelValues("compare", "different").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.WithLabelValues("compare", "equal")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.WithLabelValues("compare", "different")))
}
