package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	pkgerrors "github.com/pkg/errors"
)

// Client is the subset of the redis client used by the store. It is
// satisfied by both the single instance and the cluster clients
type Client interface {
	Get(key string) *redis.StringCmd
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping() *redis.StatusCmd
}

// Props are the properties shared by every redis backed store
type Props struct {
	Context context.Context
	Logger  log.Logger
}

type SingleInstanceProps struct {
	Props
	Addr string
}

type ClusterProps struct {
	Props
	Addrs []string
}

// Store implements core.Store using Redis as a backend
type Store struct {
	client Client
	logger log.Logger
}

// NewSingleStore creates a store backed by a single redis instance
func NewSingleStore(props SingleInstanceProps) (*Store, error) {
	c := redis.NewClient(&redis.Options{
		Addr: props.Addr,
	})

	return NewStoreWithClient(props.Props, c)
}

// NewClusterStore creates a store backed by a redis cluster
func NewClusterStore(props ClusterProps) (*Store, error) {
	c := redis.NewClusterClient(&redis.ClusterOptions{
		Addrs: props.Addrs,
	})

	return NewStoreWithClient(props.Props, c)
}

// NewStoreWithClient creates a store on top of an existing client. The
// client is pinged so that an unreachable backend fails at startup
func NewStoreWithClient(props Props, client Client) (*Store, error) {
	logger := props.Logger.ForClass("store/redis", "Store")

	if err := client.Ping().Err(); err != nil {
		logger.Error(props.Context, "failed to ping redis", log.MapFields{
			"call_type": "PingFailure",
			"err":       err.Error(),
		})
		return nil, ErrRedisConnect{Cause: err}
	}

	return &Store{client: client, logger: logger}, nil
}

func (s *Store) Name() string {
	return "store.redis.Store"
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, errors.Err) {
	v, err := s.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}

	if err != nil {
		err := errors.New(errors.ErrStoreGet,
			pkgerrors.Wrapf(ErrRedisExec{Op: "GET", Cause: err}, "failed to get key %s", key))
		s.logger.Debug(ctx, "redis get failed", log.MapFields{
			"call_type": "GetFailure",
			"key":       key,
		}, err)
		return nil, false, err
	}

	return v, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) errors.Err {
	if err := s.client.Set(key, value, 0).Err(); err != nil {
		err := errors.New(errors.ErrStorePut,
			pkgerrors.Wrapf(ErrRedisExec{Op: "SET", Cause: err}, "failed to set key %s", key))
		s.logger.Debug(ctx, "redis set failed", log.MapFields{
			"call_type": "PutFailure",
			"key":       key,
		}, err)
		return err
	}

	return nil
}
