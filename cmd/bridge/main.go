package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oasislabs/oracle-bridge/config"
	"github.com/oasislabs/oracle-bridge/gateway"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	c := &gateway.Config{}
	parser, err := config.Generate(c)
	if err != nil {
		fmt.Println("failed to generate configuration parser: ", err.Error())
		os.Exit(1)
	}

	if err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Println("failed to parse configuration: ", err.Error())
		_ = parser.Usage()
		os.Exit(1)
	}

	logger := log.New(&c.LoggingConfig, os.Stdout)
	logger.Info(ctx, "bridge started with configuration", c)

	registry := prometheus.NewRegistry()
	services, err := gateway.NewServices(ctx, logger, registry, c)
	if err != nil {
		logger.Fatal(ctx, "failed to create services", log.MapFields{
			"err": err.Error(),
		})
	}
	defer closeServices(ctx, logger, services)

	instrumentation, err := metrics.New(&c.MetricsConfig, registry, logger)
	if err != nil {
		// Fatal exits without running deferred calls
		closeServices(ctx, logger, services)
		logger.Fatal(ctx, "failed to create instrumentation service", log.MapFields{
			"err": err.Error(),
		})
	}
	instrumentation.StartInstrumentation(ctx)
	defer instrumentation.StopInstrumentation(ctx)

	bindConfig := c.BindPublicConfig.BindConfig
	s := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", bindConfig.HttpInterface, bindConfig.HttpPort),
		Handler:        gateway.NewRouter(services, c),
		ReadTimeout:    time.Duration(bindConfig.HttpReadTimeoutMs) * time.Millisecond,
		WriteTimeout:   time.Duration(bindConfig.HttpWriteTimeoutMs) * time.Millisecond,
		MaxHeaderBytes: int(bindConfig.HttpMaxHeaderBytes),
	}

	errC := make(chan error, 1)
	go func() {
		if bindConfig.HttpsEnabled {
			errC <- s.ListenAndServeTLS(bindConfig.TlsCertificatePath, bindConfig.TlsPrivateKeyPath)
		} else {
			errC <- s.ListenAndServe()
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errC:
		logger.Error(ctx, "http server failed to listen", log.MapFields{
			"err": err.Error(),
		})
	case sig := <-signals:
		logger.Info(ctx, "shutting down", log.MapFields{
			"signal": sig.String(),
		})

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "http server did not shut down cleanly", log.MapFields{
				"err": err.Error(),
			})
		}
	}
}

func closeServices(ctx context.Context, logger log.Logger, services gateway.Services) {
	if err := services.Close(); err != nil {
		logger.Warn(ctx, "failed to close services", log.MapFields{
			"err": err.Error(),
		})
	}
}
