package keyspace

import (
	"context"

	"github.com/cheggaaa/pb"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const workersFlag = "workers"

var rebuildWorkers int

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild replication maps",
	Long: `Resolve the replica sets of every claimed ring position for all
keyspaces of the schema against the given ring snapshot`,
	Run: func(cmd *cobra.Command, args []string) {
		m, store := common.OpenSchemaManager(cmd)
		defer store.Close()

		st, _ := common.ReadRingSnapshot(cmd)

		kss := m.List()
		if len(kss) == 0 {
			cmd.Println("Keyspace schema is empty.")
			return
		}

		pool, err := util.NewWorkerPool(rebuildWorkers)
		common.ExitOnErr(cmd, "could not create worker pool: %w", err)
		defer pool.Release()

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(commonflags.Timeout))
		defer cancel()

		p := pb.New(st.Len() * len(kss))
		p.Output = cmd.OutOrStdout()
		p.Start()

		maps := make([]*locator.ReplicationMap, 0, len(kss))

		for _, ks := range kss {
			s, err := m.Strategy(ks.Name())
			common.ExitOnErr(cmd, "", err)

			rm, err := locator.BuildReplicationMap(ctx, s, st,
				locator.WithWorkerPool(pool),
				locator.WithBuildProgress(func() { p.Increment() }),
			)
			common.ExitOnErr(cmd, "could not rebuild replication map: %w", err)

			maps = append(maps, rm)
		}

		p.Finish()

		for i := range kss {
			cmd.Printf("%s: %d ranges resolved (ring version %d)\n",
				kss[i].Name(), maps[i].Len(), maps[i].Version())
		}
	},
}

func initRebuildCmd() {
	flags := rebuildCmd.Flags()

	commonflags.Init(rebuildCmd)
	commonflags.InitSchema(rebuildCmd)

	flags.IntVar(&rebuildWorkers, workersFlag, 4,
		"Number of concurrent placement workers")
}
