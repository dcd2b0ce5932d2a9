package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// InstrumentationService is a background service used to expose the
// metrics collected for a running service.
type InstrumentationService interface {
	// StartInstrumentation starts instrumentation tracking for the calling service.
	StartInstrumentation(ctx context.Context)

	// StopInstrumentation stops instrumentation tracking for the calling service.
	StopInstrumentation(ctx context.Context)
}

// New constructs a new instrumentation service for the metrics
// collected by gatherer.
func New(config *Config, gatherer prometheus.Gatherer, logger log.Logger) (InstrumentationService, error) {
	logger = logger.ForClass("metrics", "InstrumentationService")

	switch config.Mode {
	case ModeNone, "":
		return stubService{}, nil
	case ModePull:
		return newPullService(config, gatherer, logger), nil
	case ModePush:
		return newPushService(config, gatherer, logger), nil
	default:
		return nil, fmt.Errorf("metrics: unsupported mode: '%v'", config.Mode)
	}
}

// stubService does not expose metrics.
type stubService struct{}

// StartInstrumentation implements the instrumentation service interface for stubService.
func (s stubService) StartInstrumentation(ctx context.Context) {}

// StopInstrumentation implements the instrumentation service interface for stubService.
func (s stubService) StopInstrumentation(ctx context.Context) {}

// A pull service is a service which exposes metrics that Prometheus can pull.
type pullService struct {
	// The HTTP server which hosts the Prometheus metrics endpoint.
	server *http.Server

	// A logger, for logging.
	logger log.Logger
}

func newPullService(config *Config, gatherer prometheus.Gatherer, logger log.Logger) *pullService {
	return &pullService{
		server: &http.Server{
			Addr:           fmt.Sprintf("%s:%s", config.PullAddr, config.PullPort),
			Handler:        promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		logger: logger,
	}
}

// StartInstrumentation implements the instrumentation service interface for pullService.
func (s *pullService) StartInstrumentation(ctx context.Context) {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error(ctx, "metrics: pull server stopped", log.MapFields{
				"call_type": "PullServerFailure",
				"addr":      s.server.Addr,
				"err":       err.Error(),
			})
		}
	}()
}

// StopInstrumentation implements the instrumentation service interface for pullService.
func (s *pullService) StopInstrumentation(ctx context.Context) {
	_ = s.server.Shutdown(ctx)
}

// A push service is used to push metrics to Prometheus.
type pushService struct {
	// The pusher which pushes updates to Prometheus.
	pusher *push.Pusher

	// The frequency with which to push updates to Prometheus.
	interval time.Duration

	// A logger, for logging.
	logger log.Logger

	cancel context.CancelFunc
}

func newPushService(config *Config, gatherer prometheus.Gatherer, logger log.Logger) *pushService {
	pusher := push.New(config.PushAddr, config.PushJobName).
		Grouping("instance", config.PushInstanceLabel).
		Gatherer(gatherer)

	interval := config.PushInterval
	if interval <= 0 {
		interval = defaultPushInterval * time.Second
	}

	return &pushService{
		pusher:   pusher,
		interval: interval,
		logger:   logger,
	}
}

// StartInstrumentation implements the instrumentation service interface for pushService.
func (s *pushService) StartInstrumentation(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.startWorker(ctx)
}

// StopInstrumentation implements the instrumentation service interface for pushService.
func (s *pushService) StopInstrumentation(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *pushService) startWorker(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-t.C:
			if err := s.pusher.Push(); err != nil {
				err := errors.New(errors.ErrPrometheusPushError, err)
				s.logger.Error(ctx, "metrics: unable to push to prometheus", err)
			}
		}
	}
}
