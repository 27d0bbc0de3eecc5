package commonflags

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Common CLI flag keys, shorthands, default
// values and their usage descriptions.
const (
	Ring          = "ring"
	RingShorthand = "r"
	RingDefault   = ""
	RingUsage     = "Path to the ring snapshot file"

	Schema          = "schema"
	SchemaShorthand = "s"
	SchemaDefault   = ""
	SchemaUsage     = "Path to the keyspace schema database"

	LocalAddr        = "local-addr"
	LocalAddrDefault = "/ip4/127.0.0.1/tcp/9042"
	LocalAddrUsage   = "Address of the local node (as 'multiaddr' or '<host>:<port>')"

	Timeout          = "timeout"
	TimeoutShorthand = "t"
	TimeoutDefault   = 15 * time.Second
	TimeoutUsage     = "Timeout for an operation"

	Verbose          = "verbose"
	VerboseShorthand = "v"
	VerboseUsage     = "Verbose output"
)

// Init adds common flags to the command:
// - Ring,
// - LocalAddr,
// - Timeout.
func Init(cmd *cobra.Command) {
	InitWithoutRing(cmd)

	cmd.Flags().StringP(Ring, RingShorthand, RingDefault, RingUsage)
}

// InitWithoutRing is similar to Init but doesn't create the ring
// snapshot flag.
func InitWithoutRing(cmd *cobra.Command) {
	ff := cmd.Flags()

	ff.String(LocalAddr, LocalAddrDefault, LocalAddrUsage)
	ff.DurationP(Timeout, TimeoutShorthand, TimeoutDefault, TimeoutUsage)
}

// InitSchema adds the schema database flag to the command.
func InitSchema(cmd *cobra.Command) {
	cmd.Flags().StringP(Schema, SchemaShorthand, SchemaDefault, SchemaUsage)
}

// Bind binds common command flags to the viper.
func Bind(cmd *cobra.Command) {
	ff := cmd.Flags()

	_ = viper.BindPFlag(Ring, ff.Lookup(Ring))
	_ = viper.BindPFlag(LocalAddr, ff.Lookup(LocalAddr))
	_ = viper.BindPFlag(Timeout, ff.Lookup(Timeout))
}

// BindSchema binds the schema database flag to the viper.
func BindSchema(cmd *cobra.Command) {
	_ = viper.BindPFlag(Schema, cmd.Flags().Lookup(Schema))
}
