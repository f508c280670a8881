// Package metrics implements the dispatcher's Prometheus collectors,
// modeled on the teacher's per-component metrics files (e.g.
// components/memory/metrics.go): package-level gauges/counters
// registered into an operator-supplied registry, with a thin Collector
// wrapper satisfying dispatcher.Recorder so the dispatcher itself never
// imports prometheus directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "ves_dispatcher"

var (
	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Subsystem: subsystem,
		Name:      "queue_depth",
		Help:      "current number of events waiting in the ring buffer",
	})

	postsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "posts_total",
		Help:      "collector POST attempts by event domain and outcome",
	}, []string{"domain", "outcome"})

	priorityPostsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "priority_posts_total",
		Help:      "throttle-state report posts sent to the collector's clientThrottlingState URL",
	})

	measurementIntervalSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Subsystem: subsystem,
		Name:      "measurement_interval_seconds",
		Help:      "current measurementIntervalChange value applied by the collector",
	})

	throttledDomains = prometheus.NewGauge(prometheus.GaugeOpts{
		Subsystem: subsystem,
		Name:      "throttled_domains",
		Help:      "number of event domains currently carrying a throttle specification",
	})
)

// Collector adapts the package-level Prometheus metrics to
// dispatcher.Recorder. The zero value is ready to use; metrics are
// package-level so multiple Collectors in a process share one set of
// series, matching the teacher's single-registration-per-process
// convention.
type Collector struct{}

// Register adds every collector to reg. Call once per process, mirroring
// the teacher's RegisterCollectors(reg *prometheus.Registry, ...) method
// on each component.
func (Collector) Register(reg *prometheus.Registry) error {
	for _, c := range []prometheus.Collector{queueDepth, postsTotal, priorityPostsTotal, measurementIntervalSeconds, throttledDomains} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (Collector) QueueDepth(n int) {
	queueDepth.Set(float64(n))
}

func (Collector) PostResult(domain string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	postsTotal.WithLabelValues(domain, outcome).Inc()
}

func (Collector) PriorityPosted() {
	priorityPostsTotal.Inc()
}

// SetMeasurementInterval records the dispatcher's current measurement
// interval, polled from command.IntervalStore by the owner (spec §3.6).
func (Collector) SetMeasurementInterval(seconds int) {
	measurementIntervalSeconds.Set(float64(seconds))
}

// SetThrottledDomainCount records how many domains currently carry a
// throttle specification, polled from throttle.Store.ThrottledDomains.
func (Collector) SetThrottledDomainCount(n int) {
	throttledDomains.Set(float64(n))
}
