package keyspace

import (
	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/spf13/cobra"
)

var alterCmd = &cobra.Command{
	Use:   "alter",
	Short: "Alter keyspace",
	Long: `Replace the replica placement strategy of an existing keyspace.
The schema version of the keyspace changes on success.`,
	Run: func(cmd *cobra.Command, args []string) {
		m, store := common.OpenSchemaManager(cmd)
		defer store.Close()

		opts, err := common.ParseStrategyOptions(strategyOptions)
		common.ExitOnErr(cmd, "", err)

		prevKs, err := m.Get(keyspaceName)
		common.ExitOnErr(cmd, "could not alter keyspace: %w", err)

		prev := prevKs.Version()

		ks, err := m.Alter(keyspaceName, strategyName, opts)
		common.ExitOnErr(cmd, "could not alter keyspace: %w", err)

		cmd.Printf("Keyspace %s altered\n", ks.Name())
		cmd.Printf("Schema version: %s => %s\n", prev, ks.Version())
	},
}

func initAlterCmd() {
	flags := alterCmd.Flags()

	commonflags.InitWithoutRing(alterCmd)
	commonflags.InitSchema(alterCmd)

	flags.StringVar(&keyspaceName, nameFlag, "", "Keyspace name")
	flags.StringVar(&strategyName, strategyFlag, locator.SimpleStrategyShortName,
		"New replica placement strategy of the keyspace")
	flags.StringSliceVar(&strategyOptions, optionFlag, nil,
		"Strategy option in key=value format (repeated)")

	_ = alterCmd.MarkFlagRequired(nameFlag)
}
