package metrics

import "github.com/prometheus/client_golang/prometheus"

const keyspaceSubsystem = "keyspace"

const keyspaceLabelKey = "keyspace"

type keyspaceMetrics struct {
	count prometheus.Gauge

	rf prometheus.GaugeVec

	schemaChanges prometheus.Counter
}

func newKeyspaceMetrics() keyspaceMetrics {
	rf := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: keyspaceSubsystem,
		Name:      "replication_factor",
		Help:      "Replication factor of the keyspace",
	}, []string{keyspaceLabelKey})

	return keyspaceMetrics{
		count: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: keyspaceSubsystem,
			Name:      "count",
			Help:      "Number of installed keyspaces",
		}),
		rf: *rf,
		schemaChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: keyspaceSubsystem,
			Name:      "schema_changes",
			Help:      "Number of applied keyspace schema changes",
		}),
	}
}

func (m keyspaceMetrics) register() {
	prometheus.MustRegister(m.count)
	prometheus.MustRegister(m.rf)
	prometheus.MustRegister(m.schemaChanges)
}

// SetKeyspaceCount updates the installed keyspace number metric.
func (m keyspaceMetrics) SetKeyspaceCount(n uint64) {
	m.count.Set(float64(n))
}

// SetKeyspaceReplicationFactor updates the replication factor metric
// of the named keyspace.
func (m keyspaceMetrics) SetKeyspaceReplicationFactor(name string, rf uint64) {
	m.rf.With(prometheus.Labels{keyspaceLabelKey: name}).Set(float64(rf))
}

// DeleteKeyspaceReplicationFactor drops the replication factor metric
// of the named keyspace.
func (m keyspaceMetrics) DeleteKeyspaceReplicationFactor(name string) {
	m.rf.Delete(prometheus.Labels{keyspaceLabelKey: name})
}

// IncSchemaChanges counts a successfully applied schema change.
func (m keyspaceMetrics) IncSchemaChanges() {
	m.schemaChanges.Inc()
}
