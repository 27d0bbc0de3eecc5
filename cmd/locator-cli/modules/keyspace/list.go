package keyspace

import (
	"strings"

	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keyspaces",
	Long:  `Print all keyspaces of the schema with their placement strategies`,
	Run: func(cmd *cobra.Command, args []string) {
		m, store := common.OpenSchemaManager(cmd)
		defer store.Close()

		kss := m.List()
		if len(kss) == 0 {
			cmd.Println("Keyspace schema is empty.")
			return
		}

		t := tablewriter.NewWriter(cmd.OutOrStdout())
		t.SetHeader([]string{"Name", "Strategy", "Options", "Version"})
		t.SetAlignment(tablewriter.ALIGN_LEFT)
		t.SetAutoWrapText(false)

		for _, ks := range kss {
			opts := ks.Options()

			pairs := make([]string, 0, opts.Len())
			for _, name := range opts.Names() {
				v, _ := opts.Get(name)
				pairs = append(pairs, name+"="+v)
			}

			t.Append([]string{
				ks.Name(),
				ks.Strategy(),
				strings.Join(pairs, ","),
				ks.Version().String(),
			})
		}

		t.Render()
	},
}

func initListCmd() {
	commonflags.InitWithoutRing(listCmd)
	commonflags.InitSchema(listCmd)
}
