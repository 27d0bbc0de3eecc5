package common

import (
	"errors"

	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/keyspace/persistent"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errNoSchemaDB = errors.New("keyspace schema database is not specified")

// OpenSchemaManager opens the schema database selected by the common
// flags and restores the keyspace manager from it. Exits on any
// failure.
//
// The caller must close the returned store.
func OpenSchemaManager(cmd *cobra.Command) (*keyspace.Manager, *persistent.Store) {
	path := viper.GetString(commonflags.Schema)
	if path == "" {
		ExitOnErr(cmd, "", errNoSchemaDB)
	}

	local, err := network.AddressFromString(viper.GetString(commonflags.LocalAddr))
	ExitOnErr(cmd, "invalid local address: %w", err)

	store, err := persistent.NewStore(path,
		persistent.WithTimeout(viper.GetDuration(commonflags.Timeout)),
	)
	ExitOnErr(cmd, "could not open schema database: %w", err)

	m := keyspace.NewManager(
		keyspace.WithLogger(zap.NewNop()),
		keyspace.WithRegistry(locator.NewDefaultRegistry(network.NewStaticLocalAddress(local))),
		keyspace.WithStorage(store),
	)

	if err := m.Load(); err != nil {
		_ = store.Close()
		ExitOnErr(cmd, "could not restore keyspace schema: %w", err)
	}

	return m, store
}
