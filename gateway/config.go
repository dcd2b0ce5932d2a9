package gateway

import (
	"math"
	"strings"

	"github.com/oasislabs/oracle-bridge/config"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/metrics"
	"github.com/oasislabs/oracle-bridge/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the general application's configuration
type Config struct {
	BindPublicConfig BindPublicConfig
	CorsConfig       CorsConfig
	StoreConfig      store.Config
	LoggingConfig    log.Config
	MetricsConfig    metrics.Config
}

func (c *Config) Use() string {
	return "oracle-bridge"
}

func (c *Config) EnvPrefix() string {
	return "ORACLE_BRIDGE"
}

func (c *Config) Binders() []config.Binder {
	return []config.Binder{
		&c.BindPublicConfig,
		&c.CorsConfig,
		&c.StoreConfig,
		&c.LoggingConfig,
		&c.MetricsConfig,
	}
}

func (c *Config) Log(fields log.Fields) {
	c.BindPublicConfig.Log(fields)
	c.CorsConfig.Log(fields)
	c.StoreConfig.Log(fields)
	c.LoggingConfig.Log(fields)
	c.MetricsConfig.Log(fields)
}

// BindConfig is the configuration for binding the exposed APIs
// to the computer network interface
type BindConfig struct {
	HttpInterface      string
	HttpPort           int32
	HttpReadTimeoutMs  int32
	HttpWriteTimeoutMs int32
	HttpMaxHeaderBytes int32
	HttpMaxBodyBytes   int32
	HttpsEnabled       bool
	TlsCertificatePath string
	TlsPrivateKeyPath  string
}

func (c *BindConfig) Configure(prefix string, v *viper.Viper) error {
	c.HttpInterface = v.GetString(prefix + ".http_interface")
	if len(c.HttpInterface) == 0 {
		return config.ErrKeyNotSet{Key: prefix + ".http_interface"}
	}

	c.HttpPort = v.GetInt32(prefix + ".http_port")
	c.HttpReadTimeoutMs = v.GetInt32(prefix + ".http_read_timeout_ms")
	c.HttpWriteTimeoutMs = v.GetInt32(prefix + ".http_write_timeout_ms")
	c.HttpMaxHeaderBytes = v.GetInt32(prefix + ".http_max_header_bytes")
	c.HttpMaxBodyBytes = v.GetInt32(prefix + ".http_max_body_bytes")

	for _, r := range []struct {
		key      string
		value    int32
		min, max int64
	}{
		{".http_port", c.HttpPort, 0, 65535},
		{".http_read_timeout_ms", c.HttpReadTimeoutMs, 0, math.MaxInt32},
		{".http_write_timeout_ms", c.HttpWriteTimeoutMs, 0, math.MaxInt32},
		{".http_max_header_bytes", c.HttpMaxHeaderBytes, 0, math.MaxInt32},
		{".http_max_body_bytes", c.HttpMaxBodyBytes, 1, math.MaxInt32},
	} {
		if err := config.CheckRange(prefix+r.key, int64(r.value), r.min, r.max); err != nil {
			return err
		}
	}

	c.HttpsEnabled = v.GetBool(prefix + ".https_enabled")
	c.TlsCertificatePath = v.GetString(prefix + ".tls_certificate_path")
	c.TlsPrivateKeyPath = v.GetString(prefix + ".tls_private_key_path")

	if c.HttpsEnabled {
		if len(c.TlsCertificatePath) == 0 || len(c.TlsPrivateKeyPath) == 0 {
			return errors.Errorf("%s.tls_certificate_path and %s.tls_private_key_path "+
				"must be set if %s.https_enabled is set", prefix, prefix, prefix)
		}
	}

	return nil
}

func (c *BindConfig) Bind(prefix string, v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(prefix+".http_interface", "127.0.0.1",
		"interface to bind for http")
	cmd.PersistentFlags().Int32(prefix+".http_port", 1234,
		"port to listen to for http")
	cmd.PersistentFlags().Int32(prefix+".http_read_timeout_ms",
		10000, "http read timeout for http interface")
	cmd.PersistentFlags().Int32(prefix+".http_write_timeout_ms",
		10000, "http write timeout for http interface")
	cmd.PersistentFlags().Int32(prefix+".http_max_header_bytes",
		10000, "http max header bytes for http")
	cmd.PersistentFlags().Int32(prefix+".http_max_body_bytes",
		1<<16, "maximum size in bytes of a request body")
	cmd.PersistentFlags().Bool(prefix+".https_enabled",
		false, "if set the interface will listen with https. If this option is "+
			"set, then "+prefix+".tls_certificate_path and "+prefix+
			".tls_private_key_path must be set as well")
	cmd.PersistentFlags().String(prefix+".tls_certificate_path",
		"", "path to the tls certificate for https")
	cmd.PersistentFlags().String(prefix+".tls_private_key_path",
		"", "path to the private key for https")

	return nil
}

type BindPublicConfig struct {
	BindConfig
}

func (c *BindPublicConfig) Log(fields log.Fields) {
	fields.Add("bind_public.http_interface", c.BindConfig.HttpInterface)
	fields.Add("bind_public.http_port", c.BindConfig.HttpPort)
	fields.Add("bind_public.http_read_timeout_ms", c.BindConfig.HttpReadTimeoutMs)
	fields.Add("bind_public.http_write_timeout_ms", c.BindConfig.HttpWriteTimeoutMs)
	fields.Add("bind_public.http_max_header_bytes", c.BindConfig.HttpMaxHeaderBytes)
	fields.Add("bind_public.http_max_body_bytes", c.BindConfig.HttpMaxBodyBytes)
	fields.Add("bind_public.https_enabled", c.BindConfig.HttpsEnabled)
	fields.Add("bind_public.tls_certificate_path", c.BindConfig.TlsCertificatePath)
	fields.Add("bind_public.tls_private_key_path", c.BindConfig.TlsPrivateKeyPath)
}

func (c *BindPublicConfig) Configure(v *viper.Viper) error {
	return c.BindConfig.Configure("bind_public", v)
}

func (c *BindPublicConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	return c.BindConfig.Bind("bind_public", v, cmd)
}

// CorsConfig sets which origins may call the bridge from a browser
type CorsConfig struct {
	Enabled        bool
	AllowedOrigins []string
	MaxAge         int
}

func (c *CorsConfig) Log(fields log.Fields) {
	fields.Add("cors.enabled", c.Enabled)
	fields.Add("cors.allowed_origins", strings.Join(c.AllowedOrigins, ","))
	fields.Add("cors.max_age", c.MaxAge)
}

func (c *CorsConfig) Configure(v *viper.Viper) error {
	c.Enabled = v.GetBool("cors.enabled")
	c.AllowedOrigins = v.GetStringSlice("cors.allowed_origins")
	c.MaxAge = v.GetInt("cors.max_age")

	if c.Enabled && len(c.AllowedOrigins) == 0 {
		return config.ErrKeyNotSet{Key: "cors.allowed_origins"}
	}
	return config.CheckRange("cors.max_age", int64(c.MaxAge), 0, 86400)
}

func (c *CorsConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().Bool("cors.enabled", false,
		"if set cross origin requests are verified against cors.allowed_origins")
	cmd.PersistentFlags().StringSlice("cors.allowed_origins", []string{"*"},
		"origins allowed to issue cross origin requests")
	cmd.PersistentFlags().Int("cors.max_age", 600,
		"seconds the result of a preflight request can be cached")
	return nil
}
