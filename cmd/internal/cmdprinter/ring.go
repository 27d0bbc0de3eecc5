package cmdprinter

import (
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/spf13/cobra"
)

// PrettyPrintRingEntry prints the ring entry with given indent and index.
// To avoid printing the location info use short parameter.
func PrettyPrintRingEntry(cmd *cobra.Command, st *ring.State, top *ring.Topology,
	index int, indent string, short bool) {
	cmd.Printf("%sEntry %d: %s => %s\n", indent, index+1, st.Token(index), st.Owner(index))

	if !short {
		if loc, ok := top.Location(st.Owner(index)); ok {
			cmd.Printf("%s\tdatacenter: %s\n", indent, loc.Datacenter)
			cmd.Printf("%s\track: %s\n", indent, loc.Rack)
		}
	}
}
