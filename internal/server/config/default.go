package config

// Default configuration values.
const (
	DefaultRedisAddr   = "0.0.0.0:6379"
	DefaultBufferSize  = 1024
	DefaultShards      = 16
	DefaultMetricsAddr = "127.0.0.1:9121"

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSize    = 100
	DefaultLogMaxBackups = 5
	DefaultLogMaxAge     = 30
)

// Bounds checked by Verify.
const (
	MinBufferSize = 64
	MaxBufferSize = 1 << 20
	MaxShards     = 1 << 12
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:   DefaultRedisAddr,
				Buffer: DefaultBufferSize,
			},
		},
		Storage: StorageSection{
			Shards: DefaultShards,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSize:    DefaultLogMaxSize,
			MaxBackups: DefaultLogMaxBackups,
			MaxAge:     DefaultLogMaxAge,
		},
	}
}
