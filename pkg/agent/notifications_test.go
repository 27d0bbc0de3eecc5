package agent

import (
	"testing"

	"github.com/molyee/scylladb/pkg/agent/config"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/molyee/scylladb/pkg/services/notificator/nats"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) *keyspace.Manager {
	local, err := network.AddressFromString("/ip4/127.0.0.1/tcp/9042")
	require.NoError(t, err)

	return keyspace.NewManager(
		keyspace.WithLogger(zaptest.NewLogger(t)),
		keyspace.WithRegistry(locator.NewDefaultRegistry(network.NewStaticLocalAddress(local))),
	)
}

func TestNewNotifications(t *testing.T) {
	l := zaptest.NewLogger(t)

	_, err := newNotifications(l, config.Notifications{})
	require.Error(t, err)

	_, err = newNotifications(l, config.Notifications{Endpoint: "nats://localhost:4222"})
	require.Error(t, err)

	n, err := newNotifications(l, config.Notifications{
		Endpoint:     "nats://localhost:4222",
		DefaultTopic: "schema",
	})
	require.NoError(t, err)
	require.NotNil(t, n.w)
	require.NotNil(t, n.n)
}

func TestSchemaSource(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Create("alpha", locator.LocalStrategyShortName, locator.NewConfig(nil))
	require.NoError(t, err)

	_, err = m.Create("bravo", locator.SimpleStrategyShortName, locator.NewConfig(map[string]string{
		locator.OptReplicationFactor: "2",
	}))
	require.NoError(t, err)

	var names []string

	schemaSource{m: m}.Iterate(func(topic string, e keyspace.Event) {
		require.Empty(t, topic)
		require.Equal(t, keyspace.EventCreated, e.Type)

		names = append(names, e.Keyspace.Name())
	})

	require.Equal(t, []string{"alpha", "bravo"}, names)
}

func TestNotificationWriterUnconnected(t *testing.T) {
	m := newTestManager(t)

	ks, err := m.Create("orders", locator.LocalStrategyShortName, locator.NewConfig(nil))
	require.NoError(t, err)

	w := notificationWriter{l: zaptest.NewLogger(t), w: nats.New()}

	// delivery failures must not disturb the schema change path
	require.NotPanics(t, func() {
		w.Notify("schema", keyspace.Event{Type: keyspace.EventCreated, Keyspace: ks})
	})
}
