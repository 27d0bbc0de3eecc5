package ring

import (
	"github.com/molyee/scylladb/cmd/internal/cmdprinter"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const describeShortFlag = "short"

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the ring snapshot",
	Long:  `Describe the ring snapshot: its version, token ownership and endpoint locations.`,
	Run: func(cmd *cobra.Command, args []string) {
		st, top := common.ReadRingSnapshot(cmd)

		cmd.Println("Version:", st.Version())
		cmd.Println("Tokens:", st.Len())
		cmd.Println("Endpoints:", st.EndpointCount())

		if short, _ := cmd.Flags().GetBool(describeShortFlag); short {
			for i := 0; i < st.Len(); i++ {
				cmdprinter.PrettyPrintRingEntry(cmd, st, top, i, "", true)
			}

			return
		}

		prettyPrintRingTable(cmd, st, top)
	},
}

func initDescribeCmd() {
	commonflags.Init(describeCmd)
	describeCmd.Flags().Bool(describeShortFlag, false, "Print entries without the location info")
}

func prettyPrintRingTable(cmd *cobra.Command, st *ring.State, top *ring.Topology) {
	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Token", "Endpoint", "Datacenter", "Rack"})
	out.SetAlignment(tablewriter.ALIGN_LEFT)
	out.SetAutoWrapText(false)

	for i := 0; i < st.Len(); i++ {
		var dc, rack string

		if loc, ok := top.Location(st.Owner(i)); ok {
			dc, rack = loc.Datacenter, loc.Rack
		}

		out.Append([]string{
			st.Token(i).String(),
			st.Owner(i).String(),
			dc,
			rack,
		})
	}

	out.Render()
}
