package store

import (
	"strings"
	"time"

	"github.com/oasislabs/oracle-bridge/config"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Provider string

const (
	ProviderMem          Provider = "mem"
	ProviderRedisSingle  Provider = "redis-single"
	ProviderRedisCluster Provider = "redis-cluster"
	ProviderBolt         Provider = "bolt"
)

func (p Provider) String() string {
	return string(p)
}

type Config struct {
	Provider      Provider
	BackendConfig BackendConfig

	// ConnectAttempts is the number of times the backend connection is
	// attempted on startup before giving up
	ConnectAttempts uint8
	ConnectBackoff  time.Duration
}

func (c *Config) Log(fields log.Fields) {
	fields.Add("store.provider", c.Provider)
	fields.Add("store.connect_attempts", c.ConnectAttempts)
	fields.Add("store.connect_backoff", c.ConnectBackoff)

	if c.BackendConfig != nil {
		c.BackendConfig.Log(fields)
	}
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Provider = Provider(v.GetString("store.provider"))
	if len(c.Provider) == 0 {
		return config.ErrKeyNotSet{Key: "store.provider"}
	}

	attempts := v.GetUint("store.connect_attempts")
	if err := config.CheckRange("store.connect_attempts", int64(attempts), 1, 255); err != nil {
		return err
	}
	c.ConnectAttempts = uint8(attempts)
	c.ConnectBackoff = v.GetDuration("store.connect_backoff")

	switch c.Provider {
	case ProviderMem:
		c.BackendConfig = &MemConfig{}
	case ProviderRedisSingle:
		c.BackendConfig = &RedisSingleConfig{}
	case ProviderRedisCluster:
		c.BackendConfig = &RedisClusterConfig{}
	case ProviderBolt:
		c.BackendConfig = &BoltConfig{}
	default:
		return config.ErrInvalidValue{
			Key:          "store.provider",
			InvalidValue: c.Provider.String(),
			Values: []string{
				ProviderMem.String(),
				ProviderRedisSingle.String(),
				ProviderRedisCluster.String(),
				ProviderBolt.String(),
			},
		}
	}

	return c.BackendConfig.Configure(v)
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("store.provider", "mem",
		"provider for the key-value store. "+
			"Options are "+ProviderMem.String()+
			", "+ProviderRedisSingle.String()+
			", "+ProviderRedisCluster.String()+
			", "+ProviderBolt.String()+".")
	cmd.PersistentFlags().Uint("store.connect_attempts", 5,
		"number of attempts to connect to the store on startup")
	cmd.PersistentFlags().Duration("store.connect_backoff", 500*time.Millisecond,
		"wait after the first failed attempt to connect to the store. It doubles on each attempt")

	binders := []config.Binder{
		&MemConfig{},
		&RedisSingleConfig{},
		&RedisClusterConfig{},
		&BoltConfig{},
	}
	for _, b := range binders {
		if err := b.Bind(v, cmd); err != nil {
			return err
		}
	}

	return nil
}

type BackendConfig interface {
	log.Loggable
	config.Binder
	ID() Provider
}

type MemConfig struct{}

func (c *MemConfig) Log(fields log.Fields) {}

func (c *MemConfig) ID() Provider {
	return ProviderMem
}

func (c *MemConfig) Configure(v *viper.Viper) error {
	return nil
}

func (c *MemConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	return nil
}

type RedisSingleConfig struct {
	Addr string
}

func (c *RedisSingleConfig) Log(fields log.Fields) {
	fields.Add("store.redis_single.addr", c.Addr)
}

func (c *RedisSingleConfig) ID() Provider {
	return ProviderRedisSingle
}

func (c *RedisSingleConfig) Configure(v *viper.Viper) error {
	c.Addr = v.GetString("store.redis_single.addr")
	if len(c.Addr) == 0 {
		return config.ErrKeyNotSet{Key: "store.redis_single.addr"}
	}

	return nil
}

func (c *RedisSingleConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("store.redis_single.addr", "127.0.0.1:6379", "redis instance address")
	return nil
}

type RedisClusterConfig struct {
	Addrs []string
}

func (c *RedisClusterConfig) Log(fields log.Fields) {
	fields.Add("store.redis_cluster.addrs", strings.Join(c.Addrs, ","))
}

func (c *RedisClusterConfig) ID() Provider {
	return ProviderRedisCluster
}

func (c *RedisClusterConfig) Configure(v *viper.Viper) error {
	c.Addrs = v.GetStringSlice("store.redis_cluster.addrs")
	if len(c.Addrs) == 0 {
		return config.ErrKeyNotSet{Key: "store.redis_cluster.addrs"}
	}

	return nil
}

func (c *RedisClusterConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().StringSlice(
		"store.redis_cluster.addrs",
		[]string{"127.0.0.1:6379"},
		"array of addresses for bootstrap redis instances in the cluster")
	return nil
}

type BoltConfig struct {
	Path string
}

func (c *BoltConfig) Log(fields log.Fields) {
	fields.Add("store.bolt.path", c.Path)
}

func (c *BoltConfig) ID() Provider {
	return ProviderBolt
}

func (c *BoltConfig) Configure(v *viper.Viper) error {
	c.Path = v.GetString("store.bolt.path")
	if len(c.Path) == 0 {
		return config.ErrKeyNotSet{Key: "store.bolt.path"}
	}

	return nil
}

func (c *BoltConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("store.bolt.path", "oracle-bridge.db", "path to the database file")
	return nil
}
