package ring

import (
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/spf13/cobra"
)

// Cmd represents the ring command group.
var Cmd = &cobra.Command{
	Use:   "ring",
	Short: "Operations with the token ring",
	Long:  `Operations with the token ring`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// bind exactly that cmd's flags to
		// the viper before execution
		commonflags.Bind(cmd)
		commonflags.BindSchema(cmd)
	},
}

func init() {
	Cmd.AddCommand(
		describeCmd,
		endpointsCmd,
	)

	initDescribeCmd()
	initEndpointsCmd()
}
