package ring

import (
	"context"
	"errors"

	"github.com/molyee/scylladb/cmd/locator-cli/internal/common"
	"github.com/molyee/scylladb/cmd/locator-cli/internal/commonflags"
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/molyee/scylladb/pkg/services/placement"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	tokenFlag    = "token"
	keyFlag      = "key"
	keyspaceFlag = "keyspace"
	strategyFlag = "strategy"
	optionFlag   = "option"
	spreadFlag   = "spread"
)

var (
	errTokenAndKey = errors.New("either token or key must be given, not both")
	errNoToken     = errors.New("missing token or key to place")
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Compute natural endpoints of a token",
	Long: `Compute natural endpoints of a ring position against the ring snapshot.
The position is given as a token or as a partition key hashed with the
default partitioner. The replica placement strategy comes from the
keyspace schema or is named explicitly.`,
	Run: func(cmd *cobra.Command, args []string) {
		st, _ := common.ReadRingSnapshot(cmd)

		tok := resolveToken(cmd)
		s, label, done := resolveStrategy(cmd)
		defer done()

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(commonflags.Timeout))
		defer cancel()

		es, err := s.CalculateNaturalEndpoints(ctx, tok, st)
		common.ExitOnErr(cmd, "could not calculate natural endpoints: %w", err)

		opts := []placement.Option{
			placement.ForKeyspace(label),
			placement.ForToken(tok),
			placement.UseBuilder(staticBuilder{vec: es.Endpoints()}),
			placement.WithoutSuccessTracking(),
		}

		if spread, _ := cmd.Flags().GetBool(spreadFlag); spread {
			opts = append(opts, placement.SpreadByToken())
		}

		tr, err := placement.NewTraverser(ctx, opts...)
		common.ExitOnErr(cmd, "could not build placement: %w", err)

		cmd.Println("Replication factor:", s.ReplicationFactor(st))

		for i := 0; ; i++ {
			addr, ok := tr.Next()
			if !ok {
				break
			}

			cmd.Printf("%d: %s\n", i+1, addr)
		}
	},
}

// resolveToken reads the ring position flags: a literal token or a
// partition key to hash. Exits on invalid or ambiguous input.
func resolveToken(cmd *cobra.Command) ring.Token {
	tokStr, _ := cmd.Flags().GetString(tokenFlag)
	keyStr, _ := cmd.Flags().GetString(keyFlag)

	switch {
	case tokStr != "" && keyStr != "":
		common.ExitOnErr(cmd, "", errTokenAndKey)
	case keyStr != "":
		var p ring.Murmur3Partitioner

		return p.TokenForKey([]byte(keyStr))
	case tokStr != "":
		tok, err := ring.ParseToken(tokStr)
		common.ExitOnErr(cmd, "invalid token: %w", err)

		return tok
	default:
		common.ExitOnErr(cmd, "", errNoToken)
	}

	return 0
}

// resolveStrategy builds the placement strategy selected by the flags:
// the installed strategy of a schema keyspace, or an ad-hoc instance of
// an explicitly named one. Returns the strategy, its display label and
// a release function to call when the strategy is no longer needed.
func resolveStrategy(cmd *cobra.Command) (locator.Strategy, string, func()) {
	if ksName, _ := cmd.Flags().GetString(keyspaceFlag); ksName != "" {
		m, store := common.OpenSchemaManager(cmd)

		s, err := m.Strategy(ksName)
		if err != nil {
			_ = store.Close()
			common.ExitOnErr(cmd, "could not resolve keyspace strategy: %w", err)
		}

		return s, ksName, func() { _ = store.Close() }
	}

	local, err := network.AddressFromString(viper.GetString(commonflags.LocalAddr))
	common.ExitOnErr(cmd, "invalid local address: %w", err)

	name, _ := cmd.Flags().GetString(strategyFlag)
	oo, _ := cmd.Flags().GetStringArray(optionFlag)

	options, err := common.ParseStrategyOptions(oo)
	common.ExitOnErr(cmd, "", err)

	reg := locator.NewDefaultRegistry(network.NewStaticLocalAddress(local))

	s, err := reg.Create(name, options)
	common.ExitOnErr(cmd, "could not create strategy: %w", err)
	common.ExitOnErr(cmd, "invalid strategy options: %w", s.ValidateOptions())

	return s, name, func() {}
}

type staticBuilder struct {
	vec []network.Address
}

func (b staticBuilder) BuildPlacement(context.Context, string, ring.Token) ([]network.Address, error) {
	return b.vec, nil
}

func initEndpointsCmd() {
	commonflags.Init(endpointsCmd)
	commonflags.InitSchema(endpointsCmd)

	ff := endpointsCmd.Flags()
	ff.String(tokenFlag, "", "Token to place (signed 64-bit decimal)")
	ff.String(keyFlag, "", "Partition key to place (hashed with the default partitioner)")
	ff.String(keyspaceFlag, "", "Keyspace whose strategy computes the placement")
	ff.String(strategyFlag, locator.SimpleStrategyShortName, "Replica placement strategy name")
	ff.StringArray(optionFlag, nil, "Strategy option in key=value form (may be repeated)")
	ff.Bool(spreadFlag, false, "Order replicas by rendezvous hash of the token")
}
