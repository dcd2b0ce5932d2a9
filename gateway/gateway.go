package gateway

import (
	"context"

	"github.com/oasislabs/oracle-bridge/api/v0/bridge"
	"github.com/oasislabs/oracle-bridge/api/v0/health"
	"github.com/oasislabs/oracle-bridge/api/v0/version"
	core "github.com/oasislabs/oracle-bridge/bridge"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/metrics"
	"github.com/oasislabs/oracle-bridge/rpc"
	"github.com/oasislabs/oracle-bridge/store"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// ServiceName prefixes every metric exported by the gateway
const ServiceName = "oracle_bridge"

// Services are the long lived components the gateway serves
// requests with
type Services struct {
	Logger  log.Logger
	Store   *store.InstrumentedStore
	Runtime *core.Runtime
	Metrics *metrics.ServiceMetrics
}

// Close releases the resources held by the services
func (s Services) Close() error {
	return s.Store.Close()
}

// NewServices creates the store selected by the configuration and the
// bridge runtime on top of it. Metrics are registered on registerer
func NewServices(
	ctx context.Context,
	logger log.Logger,
	registerer prometheus.Registerer,
	config *Config,
) (Services, error) {
	// metrics are registered before the store is opened so that a
	// registration failure leaves no backend behind
	storeMetrics, err := metrics.NewStoreMetrics(registerer, ServiceName)
	if err != nil {
		return Services{}, errors.Wrap(err, "failed to register store metrics")
	}

	serviceMetrics, err := metrics.NewServiceMetrics(registerer, ServiceName)
	if err != nil {
		return Services{}, errors.Wrap(err, "failed to register service metrics")
	}

	backend, err := store.NewStoreWithRetry(ctx, store.Services{Logger: logger}, &config.StoreConfig)
	if err != nil {
		return Services{}, errors.Wrap(err, "failed to create store")
	}

	instrumented := store.NewInstrumentedStore(backend, storeMetrics)

	return Services{
		Logger:  logger,
		Store:   instrumented,
		Runtime: core.NewRuntime(core.Services{Logger: logger, Store: instrumented}),
		Metrics: serviceMetrics,
	}, nil
}

// NewRouter binds every API the gateway exposes
func NewRouter(services Services, config *Config) *rpc.HttpRouter {
	binder := rpc.NewHttpBinder(rpc.HttpBinderProperties{
		Encoder:        rpc.JsonEncoder{},
		Logger:         services.Logger,
		HandlerFactory: rpc.NewHttpJsonHandlerFactory(services.Logger, uint(config.BindPublicConfig.HttpMaxBodyBytes)),
		Metrics:        services.Metrics,
	})

	binder.AddPreProcessor(rpc.NewHttpCorsPreProcessor(rpc.HttpCorsPreProcessorProps{
		Enabled:        config.CorsConfig.Enabled,
		AllowedOrigins: config.CorsConfig.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", rpc.HttpHeaderTraceID},
		MaxAge:         config.CorsConfig.MaxAge,
	}))

	bridge.BindHandler(bridge.Services{
		Logger: services.Logger,
		Client: services.Runtime,
	}, binder)
	health.BindHandler(health.Services{
		Logger: services.Logger,
		Client: services.Runtime,
	}, binder)
	version.BindHandler(binder)

	return binder.Build()
}
