package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oasislabs/oracle-bridge/concurrent"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/store/bolt"
	"github.com/oasislabs/oracle-bridge/store/core"
	"github.com/oasislabs/oracle-bridge/store/mem"
	"github.com/oasislabs/oracle-bridge/store/redis"
)

type Services struct {
	Logger log.Logger
}

// NewStore creates the store backend selected by the configuration
func NewStore(ctx context.Context, services Services, config *Config) (core.Store, error) {
	if config.BackendConfig == nil || config.BackendConfig.ID() != config.Provider {
		return nil, ErrBackendConfigConflict
	}

	switch config.BackendConfig.ID() {
	case ProviderRedisSingle:
		return NewRedisSingleStore(ctx, services, config.BackendConfig.(*RedisSingleConfig))
	case ProviderRedisCluster:
		return NewRedisClusterStore(ctx, services, config.BackendConfig.(*RedisClusterConfig))
	case ProviderBolt:
		return NewBoltStore(ctx, services, config.BackendConfig.(*BoltConfig))
	case ProviderMem:
		return mem.NewStore(mem.Services{
			Logger: services.Logger,
		}), nil
	default:
		return nil, ErrUnknownBackend{Backend: config.BackendConfig.ID().String()}
	}
}

func NewRedisSingleStore(
	ctx context.Context,
	services Services,
	config *RedisSingleConfig,
) (core.Store, error) {
	s, err := redis.NewSingleStore(redis.SingleInstanceProps{
		Props: redis.Props{
			Context: ctx,
			Logger:  services.Logger,
		},
		Addr: config.Addr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redis store %s", err.Error())
	}
	return s, nil
}

func NewRedisClusterStore(
	ctx context.Context,
	services Services,
	config *RedisClusterConfig,
) (core.Store, error) {
	s, err := redis.NewClusterStore(redis.ClusterProps{
		Props: redis.Props{
			Context: ctx,
			Logger:  services.Logger,
		},
		Addrs: config.Addrs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redis store %s", err.Error())
	}
	return s, nil
}

func NewBoltStore(
	ctx context.Context,
	services Services,
	config *BoltConfig,
) (core.Store, error) {
	s, err := bolt.NewStore(bolt.Props{
		Context: ctx,
		Logger:  services.Logger,
		Path:    config.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start bolt store %s", err.Error())
	}
	return s, nil
}

// NewStoreWithRetry is NewStore retried with exponential backoff as
// set by ConnectAttempts and ConnectBackoff. Configuration errors are
// not retried
func NewStoreWithRetry(ctx context.Context, services Services, config *Config) (core.Store, error) {
	var store core.Store
	err := concurrent.RetryWithConfig(ctx, func(ctx context.Context) error {
		s, err := NewStore(ctx, services, config)
		if err == nil {
			store = s
			return nil
		}

		if _, ok := err.(ErrUnknownBackend); ok || err == ErrBackendConfigConflict {
			return concurrent.ErrCannotRecover{Cause: err}
		}

		services.Logger.Warn(ctx, "failed to connect to store", log.MapFields{
			"call_type": "NewStoreFailure",
			"provider":  config.Provider.String(),
			"err":       err.Error(),
		})
		return err
	}, concurrent.RetryConfig{
		Attempts:        config.ConnectAttempts,
		BaseTimeout:     config.ConnectBackoff,
		BaseExp:         2,
		MaxRetryTimeout: 30 * time.Second,
		Random:          true,
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}
