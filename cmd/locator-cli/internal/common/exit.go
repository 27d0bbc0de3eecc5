package common

import (
	"errors"
	"fmt"
	"os"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/spf13/cobra"
)

// ExitOnErr prints error and exits with a code depending on the error type
//
//	0 if nil
//	1 if untyped
//	2 if [locator.ConfigurationError]
//	3 if [keyspace.ErrNotFound] or [ring.ErrNotFound]
func ExitOnErr(cmd *cobra.Command, errFmt string, err error) {
	if err == nil {
		return
	}

	if errFmt != "" {
		err = fmt.Errorf(errFmt, err)
	}

	const (
		_ = iota
		internal
		badConfiguration
		notFound
	)

	var code int
	var cfgErr = new(locator.ConfigurationError)

	switch {
	case errors.As(err, &cfgErr):
		code = badConfiguration
	case errors.Is(err, keyspace.ErrNotFound), errors.Is(err, ring.ErrNotFound):
		code = notFound
	default:
		code = internal
	}

	cmd.PrintErrln(err)
	os.Exit(code)
}
