package keyspace

import (
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/spf13/cobra"
)

// Cmd represents the keyspace command group.
var Cmd = &cobra.Command{
	Use:   "keyspace",
	Short: "Operations with the keyspace schema",
	Long:  `Operations with the keyspace schema and its replica placement strategies`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// bind exactly that cmd's flags to
		// the viper before execution
		commonflags.Bind(cmd)
		commonflags.BindSchema(cmd)
	},
}

func init() {
	Cmd.AddCommand(
		createCmd,
		alterCmd,
		dropCmd,
		listCmd,
		rebuildCmd,
	)

	initCreateCmd()
	initAlterCmd()
	initDropCmd()
	initListCmd()
	initRebuildCmd()
}
