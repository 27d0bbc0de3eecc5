package notificator

import (
	"fmt"

	"github.com/molyee/scylladb/pkg/keyspace"
	"go.uber.org/zap"
)

// Prm groups the required parameters of the Notificator's constructor.
type Prm struct {
	writer NotificationWriter

	topic string

	logger *zap.Logger
}

// SetWriter sets a component for sending schema change notifications.
func (p *Prm) SetWriter(w NotificationWriter) *Prm {
	p.writer = w
	return p
}

// SetDefaultTopic sets the topic for schema change notifications.
func (p *Prm) SetDefaultTopic(topic string) *Prm {
	p.topic = topic
	return p
}

// SetLogger sets a logger.
func (p *Prm) SetLogger(v *zap.Logger) *Prm {
	p.logger = v
	return p
}

// Notificator is a schema change notification producer. It distributes
// keyspace schema events to the subscribers via the configured writer.
//
// For correct operation must be created via New function.
type Notificator struct {
	w NotificationWriter

	topic string

	l *zap.Logger
}

// New creates, initializes and returns the Notificator instance.
//
// Panics if any field of the passed Prm structure is not set.
func New(p *Prm) *Notificator {
	panicOnNil := func(v any, name string) {
		if v == nil {
			panic(fmt.Sprintf("Notificator constructor: %s is nil", name))
		}
	}

	panicOnNil(p.writer, "NotificationWriter")
	panicOnNil(p.logger, "Logger")

	if p.topic == "" {
		panic("Notificator constructor: default topic is empty")
	}

	return &Notificator{
		w:     p.writer,
		topic: p.topic,
		l:     p.logger,
	}
}

// Handler returns a schema change handler that publishes every event
// to the default topic. Plug it into the keyspace manager.
func (n *Notificator) Handler() keyspace.Handler {
	return func(e keyspace.Event) {
		n.ProcessEvent(e)
	}
}

// ProcessEvent publishes the schema change event to the default topic.
func (n *Notificator) ProcessEvent(e keyspace.Event) {
	n.l.Debug("notificator: processing schema change event",
		zap.Stringer("type", e.Type),
		zap.String("keyspace", e.Keyspace.Name()))

	n.w.Notify(n.topic, e)
}

// ProcessSchema publishes the whole schema of the source, letting
// late subscribers catch up with the current state.
func (n *Notificator) ProcessSchema(src NotificationSource) {
	n.l.Debug("notificator: replaying keyspace schema")

	src.Iterate(func(topic string, e keyspace.Event) {
		if topic == "" {
			topic = n.topic
		}

		n.w.Notify(topic, e)
	})
}
