package httputil

import (
	"expvar"
	"net/http"
	"net/http/pprof"
)

// Handler returns an http.Handler of the pprof profiler
// and expvar endpoints.
//
// Should be used as a Handler in HTTPSrvPrm of the profiling Server.
func Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/debug/vars", expvar.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}
