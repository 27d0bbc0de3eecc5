package common

import (
	"errors"

	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoRingSnapshot = errors.New("ring snapshot file is not specified")

// ReadRingSnapshot reads and builds the ring snapshot selected by the
// common flags. Exits on any failure.
func ReadRingSnapshot(cmd *cobra.Command) (*ring.State, *ring.Topology) {
	path := viper.GetString(commonflags.Ring)
	if path == "" {
		ExitOnErr(cmd, "", errNoRingSnapshot)
	}

	snap, err := ring.ReadSnapshotFile(path)
	ExitOnErr(cmd, "could not read ring snapshot: %w", err)

	st, top, err := snap.Build()
	ExitOnErr(cmd, "invalid ring snapshot: %w", err)

	return st, top
}
