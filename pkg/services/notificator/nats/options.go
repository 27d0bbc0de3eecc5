package nats

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// WithClientCert sets the client certificate and the key for a
// TLS-secured connection to the server.
func WithClientCert(certPath, keyPath string) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.ClientCert(certPath, keyPath))
	}
}

// WithRootCA sets the list of root CA files for a TLS-secured
// connection to the server.
func WithRootCA(paths ...string) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.RootCAs(paths...))
	}
}

// WithTimeout sets a timeout of the connection to the server.
func WithTimeout(timeout time.Duration) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.Timeout(timeout))
	}
}

// WithConnectionName sets the name of the connection, shown in the
// server side logs.
func WithConnectionName(name string) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.Name(name))
	}
}

// WithLogger sets a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *opts) {
		o.log = logger
	}
}
