package keyspace

import (
	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/spf13/cobra"
)

const (
	nameFlag     = "name"
	strategyFlag = "strategy"
	optionFlag   = "option"
)

var (
	keyspaceName    string
	strategyName    string
	strategyOptions []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new keyspace",
	Long: `Create new keyspace with the given replica placement strategy.
Strategy options are passed as repeated key=value pairs, e.g.
--option replication_factor=3`,
	Run: func(cmd *cobra.Command, args []string) {
		m, store := common.OpenSchemaManager(cmd)
		defer store.Close()

		opts, err := common.ParseStrategyOptions(strategyOptions)
		common.ExitOnErr(cmd, "", err)

		ks, err := m.Create(keyspaceName, strategyName, opts)
		common.ExitOnErr(cmd, "could not create keyspace: %w", err)

		cmd.Printf("Keyspace %s created\n", ks.Name())
		cmd.Printf("Schema version: %s\n", ks.Version())
	},
}

func initCreateCmd() {
	flags := createCmd.Flags()

	commonflags.InitWithoutRing(createCmd)
	commonflags.InitSchema(createCmd)

	flags.StringVar(&keyspaceName, nameFlag, "", "Keyspace name")
	flags.StringVar(&strategyName, strategyFlag, locator.SimpleStrategyShortName,
		"Replica placement strategy of the keyspace")
	flags.StringSliceVar(&strategyOptions, optionFlag, nil,
		"Strategy option in key=value format (repeated)")

	_ = createCmd.MarkFlagRequired(nameFlag)
}
