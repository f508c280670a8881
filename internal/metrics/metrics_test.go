package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAddsAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Collector{}.Register(reg))
	// Registering the same collectors twice must fail (AlreadyRegisteredError).
	assert.Error(t, Collector{}.Register(reg))
}

func TestQueueDepthAndPostResultUpdateSeries(t *testing.T) {
	var c Collector
	c.QueueDepth(7)
	assert.InDelta(t, 7, testutil.ToFloat64(queueDepth), 0.001)

	c.PostResult("fault", true)
	c.PostResult("fault", false)
	assert.InDelta(t, 1, testutil.ToFloat64(postsTotal.WithLabelValues("fault", "success")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(postsTotal.WithLabelValues("fault", "failure")), 0.001)

	c.PriorityPosted()
	assert.InDelta(t, 1, testutil.ToFloat64(priorityPostsTotal), 0.001)

	c.SetMeasurementInterval(120)
	assert.InDelta(t, 120, testutil.ToFloat64(measurementIntervalSeconds), 0.001)

	c.SetThrottledDomainCount(3)
	assert.InDelta(t, 3, testutil.ToFloat64(throttledDomains), 0.001)
}
