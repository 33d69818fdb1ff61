package config

import "time"

// ServerConfig is the root configuration for roar-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// KeepAlive serves several requests per connection instead of one.
	KeepAlive bool `koanf:"keepalive"`

	// Buffer is the per-connection read buffer in bytes.
	Buffer int `koanf:"buffer"`

	// ReadTimeout and WriteTimeout are disabled when zero.
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`

	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit int `koanf:"ratelimit"`
	Burst     int `koanf:"burst"`
}

// StorageSection configures the in-memory store.
type StorageSection struct {
	// Shards is the number of lock shards per map (power of two).
	Shards int `koanf:"shards"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File enables size-rotated file output when set.
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"maxsize"`
	MaxBackups int    `koanf:"maxbackups"`
	MaxAge     int    `koanf:"maxage"`
	Compress   bool   `koanf:"compress"`
}
