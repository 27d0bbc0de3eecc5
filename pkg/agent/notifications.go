package agent

import (
	"context"
	"errors"

	"github.com/molyee/scylladb/misc"
	"github.com/molyee/scylladb/pkg/agent/config"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/services/notificator"
	"github.com/molyee/scylladb/pkg/services/notificator/nats"
	"go.uber.org/zap"
)

// notificationWriter forwards schema change records to the NATS writer
// and logs delivery failures.
type notificationWriter struct {
	l *zap.Logger
	w *nats.Writer
}

func (n notificationWriter) Notify(topic string, e keyspace.Event) {
	if err := n.w.Notify(topic, e); err != nil {
		n.l.Warn("could not write schema notification",
			zap.String("keyspace", e.Keyspace.Name()),
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

type notifications struct {
	cfg config.Notifications

	w *nats.Writer

	n *notificator.Notificator
}

func newNotifications(l *zap.Logger, cfg config.Notifications) (*notifications, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("notification server endpoint is not configured")
	}

	if cfg.DefaultTopic == "" {
		return nil, errors.New("default notification topic is not configured")
	}

	oo := []nats.Option{
		// connection name is used in the server side logs
		nats.WithConnectionName(misc.AgentName),
		nats.WithTimeout(cfg.Timeout),
		nats.WithLogger(l),
	}

	if cfg.Certificate != "" {
		oo = append(oo, nats.WithClientCert(cfg.Certificate, cfg.Key))
	}

	if len(cfg.CA) > 0 {
		oo = append(oo, nats.WithRootCA(cfg.CA...))
	}

	w := nats.New(oo...)

	n := notificator.New(new(notificator.Prm).
		SetLogger(l).
		SetDefaultTopic(cfg.DefaultTopic).
		SetWriter(notificationWriter{l: l, w: w}),
	)

	return &notifications{cfg: cfg, w: w, n: n}, nil
}

func (x *notifications) connect(ctx context.Context) error {
	return x.w.Connect(ctx, x.cfg.Endpoint)
}

// schemaSource feeds the current keyspace schema to the notificator as
// a sequence of creation events without explicit topics.
type schemaSource struct {
	m *keyspace.Manager
}

func (s schemaSource) Iterate(f func(topic string, e keyspace.Event)) {
	for _, ks := range s.m.List() {
		f("", keyspace.Event{Type: keyspace.EventCreated, Keyspace: ks})
	}
}
