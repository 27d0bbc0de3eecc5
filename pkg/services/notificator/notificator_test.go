package notificator

import (
	"testing"

	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testWriter struct {
	topics []string
	events []keyspace.Event
}

func (w *testWriter) Notify(topic string, e keyspace.Event) {
	w.topics = append(w.topics, topic)
	w.events = append(w.events, e)
}

type testSource struct {
	records map[string]keyspace.Event
}

func (s testSource) Iterate(handler func(topic string, e keyspace.Event)) {
	for topic, e := range s.records {
		handler(topic, e)
	}
}

func testEvent(name string) keyspace.Event {
	return keyspace.Event{
		Type:     keyspace.EventCreated,
		Keyspace: keyspace.New(name, locator.LocalStrategyShortName, locator.NewConfig(nil)),
	}
}

func TestNew(t *testing.T) {
	l := zaptest.NewLogger(t)

	require.Panics(t, func() {
		New(new(Prm).SetDefaultTopic("schema").SetLogger(l))
	})

	require.Panics(t, func() {
		New(new(Prm).SetWriter(new(testWriter)).SetLogger(l))
	})

	require.Panics(t, func() {
		New(new(Prm).SetWriter(new(testWriter)).SetDefaultTopic("schema"))
	})

	require.NotNil(t, New(new(Prm).
		SetWriter(new(testWriter)).
		SetDefaultTopic("schema").
		SetLogger(l),
	))
}

func TestNotificator_Handler(t *testing.T) {
	w := new(testWriter)

	n := New(new(Prm).
		SetWriter(w).
		SetDefaultTopic("schema").
		SetLogger(zaptest.NewLogger(t)),
	)

	e := testEvent("orders")

	n.Handler()(e)

	require.Equal(t, []string{"schema"}, w.topics)
	require.Equal(t, []keyspace.Event{e}, w.events)
}

func TestNotificator_ProcessSchema(t *testing.T) {
	w := new(testWriter)

	n := New(new(Prm).
		SetWriter(w).
		SetDefaultTopic("schema").
		SetLogger(zaptest.NewLogger(t)),
	)

	n.ProcessSchema(testSource{
		records: map[string]keyspace.Event{
			"custom": testEvent("orders"),
			"":       testEvent("local_ks"),
		},
	})

	require.Len(t, w.events, 2)
	require.ElementsMatch(t, []string{"custom", "schema"}, w.topics)
}
