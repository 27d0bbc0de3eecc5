package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const replicationSubsystem = "replication"

type replicationMetrics struct {
	mapsRebuilt prometheus.Counter

	buildDuration prometheus.Histogram

	ringVersion prometheus.Gauge
}

func newReplicationMetrics() replicationMetrics {
	return replicationMetrics{
		mapsRebuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: replicationSubsystem,
			Name:      "maps_rebuilt",
			Help:      "Number of completed replication view refreshes",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: replicationSubsystem,
			Name:      "map_build_time",
			Help:      "Replication map construction time",
		}),
		ringVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: replicationSubsystem,
			Name:      "ring_version",
			Help:      "Version of the latest known token ring state",
		}),
	}
}

func (m replicationMetrics) register() {
	prometheus.MustRegister(m.mapsRebuilt)
	prometheus.MustRegister(m.buildDuration)
	prometheus.MustRegister(m.ringVersion)
}

// IncMapsRebuilt counts a completed replication view refresh.
func (m replicationMetrics) IncMapsRebuilt() {
	m.mapsRebuilt.Inc()
}

// AddMapBuildDuration adds the time taken by a single replication map
// construction.
func (m replicationMetrics) AddMapBuildDuration(d time.Duration) {
	m.buildDuration.Observe(d.Seconds())
}

// SetRingVersion updates the ring state version metric.
func (m replicationMetrics) SetRingVersion(version uint64) {
	m.ringVersion.Set(float64(version))
}
