package keyspace

import (
	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop keyspace",
	Long:  `Remove a keyspace from the schema`,
	Run: func(cmd *cobra.Command, args []string) {
		m, store := common.OpenSchemaManager(cmd)
		defer store.Close()

		err := m.Drop(keyspaceName)
		common.ExitOnErr(cmd, "could not drop keyspace: %w", err)

		cmd.Printf("Keyspace %s dropped\n", keyspaceName)
	},
}

func initDropCmd() {
	flags := dropCmd.Flags()

	commonflags.InitWithoutRing(dropCmd)
	commonflags.InitSchema(dropCmd)

	flags.StringVar(&keyspaceName, nameFlag, "", "Keyspace name")

	_ = dropCmd.MarkFlagRequired(nameFlag)
}
