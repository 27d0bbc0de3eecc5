package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/molyee/scylladb/misc"
	"github.com/molyee/scylladb/pkg/agent"
	"github.com/molyee/scylladb/pkg/agent/config"
	httputil "github.com/molyee/scylladb/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	// ErrorReturnCode returns when application crashed at initialization stage.
	ErrorReturnCode = 1

	// SuccessReturnCode returns when application closed without panic.
	SuccessReturnCode = 0
)

// exits with ErrorReturnCode if err != nil.
func exitErr(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(ErrorReturnCode)
	}
}

// exits with ErrorReturnCode or SuccessReturnCode depending on err.
func exitWithCode(err error) {
	if err != nil {
		os.Exit(ErrorReturnCode)
	}

	os.Exit(SuccessReturnCode)
}

func main() {
	configFile := flag.String("config", "", "path to config")
	versionFlag := flag.Bool("version", false, "locator agent version")
	flag.Parse()

	if *versionFlag {
		fmt.Print(misc.BuildInfo("Locator Agent"))

		os.Exit(SuccessReturnCode)
	}

	cfg, err := newConfig(*configFile)
	exitErr(err)

	log, err := newLogger(cfg)
	exitErr(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	intErr := make(chan error) // internal agent errors

	httpServers := initHTTPServers(cfg, log)
	// start HTTP servers
	for i := range httpServers {
		srv := httpServers[i]
		go func() {
			if err := srv.srv.Serve(); err != nil {
				intErr <- fmt.Errorf("%s server: %w", srv.name, err)
			}
		}()
	}

	a, err := agent.New(log, cfg)
	exitErr(err)

	err = a.Start(ctx)
	exitErr(err)

	log.Info("application started",
		zap.String("version", misc.Version))

	select {
	case <-ctx.Done():
	case err = <-intErr:
		log.Info("internal error", zap.String("msg", err.Error()))
	}

	a.Stop()

	// shut down HTTP servers
	var shutdownWG errgroup.Group
	for i := range httpServers {
		srv := httpServers[i]

		shutdownWG.Go(func() error {
			err := srv.srv.Shutdown()
			if err != nil {
				log.Debug("could not shutdown HTTP server",
					zap.Error(err),
				)
			}

			return err
		})
	}

	shutdownErr := shutdownWG.Wait()
	if err == nil && shutdownErr != nil {
		err = shutdownErr
	}

	log.Info("application stopped")

	exitWithCode(err)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}

	c := zap.NewProductionConfig()
	c.Level = logLevel
	c.Encoding = cfg.Logger.Encoding
	if !cfg.Logger.Sampling.Enabled {
		c.Sampling = nil
	}
	if (term.IsTerminal(int(os.Stdout.Fd())) && !cfg.IsSet("logger.timestamp")) || cfg.Logger.Timestamp {
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		c.EncoderConfig.EncodeTime = func(_ time.Time, _ zapcore.PrimitiveArrayEncoder) {}
	}

	return c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
}

type httpComponent struct {
	name string
	srv  *httputil.Server
}

func initHTTPServers(cfg *config.Config, log *zap.Logger) []httpComponent {
	items := []struct {
		service config.BasicService
		name    string
		handler func() http.Handler
	}{
		{cfg.Prometheus, "prometheus", promhttp.Handler},
		{cfg.Pprof, "pprof", httputil.Handler},
	}

	httpServers := make([]httpComponent, 0, len(items))

	for _, item := range items {
		if !item.service.Enabled {
			log.Info(item.name + " is disabled, skip")
			continue
		}
		log.Info(item.name + " is enabled")

		var prm httputil.HTTPSrvPrm

		prm.Address = item.service.Address
		prm.Handler = item.handler()

		httpServers = append(httpServers, httpComponent{
			name: item.name,
			srv: httputil.New(prm,
				httputil.WithShutdownTimeout(
					item.service.ShutdownTimeout,
				),
			),
		})
	}

	return httpServers
}
