package metrics

const namespace = "locator_agent"

// AgentMetrics groups the metrics of the locator agent. Implements
// the metric registers of the keyspace manager and the ring watcher.
type AgentMetrics struct {
	keyspaceMetrics
	replicationMetrics
	stateMetrics
}

// NewAgentMetrics creates, registers and returns AgentMetrics
// instance. Must be called at most once per process.
func NewAgentMetrics(version string) *AgentMetrics {
	registerVersionMetric(namespace, version)

	keyspace := newKeyspaceMetrics()
	keyspace.register()

	replication := newReplicationMetrics()
	replication.register()

	state := newStateMetrics()
	state.register()

	return &AgentMetrics{
		keyspaceMetrics:    keyspace,
		replicationMetrics: replication,
		stateMetrics:       state,
	}
}
