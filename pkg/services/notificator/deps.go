package notificator

import "github.com/molyee/scylladb/pkg/keyspace"

// NotificationSource is a source of schema change notifications.
type NotificationSource interface {
	// Iterate must iterate over the current keyspace schema and call
	// handler for every record.
	Iterate(handler func(topic string, e keyspace.Event))
}

// NotificationWriter notifies all the subscribers
// about new schema change notifications.
type NotificationWriter interface {
	// Notify must send the schema change record
	// into the specified topic.
	Notify(topic string, e keyspace.Event)
}
