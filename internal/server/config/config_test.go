package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.Redis.KeepAlive {
		t.Error("KeepAlive should be disabled by default")
	}
	if cfg.Server.Redis.Buffer != DefaultBufferSize {
		t.Errorf("Redis.Buffer = %d, want %d", cfg.Server.Redis.Buffer, DefaultBufferSize)
	}
	if cfg.Server.Redis.ReadTimeout != 0 || cfg.Server.Redis.WriteTimeout != 0 {
		t.Error("timeouts should be disabled by default")
	}
	if cfg.Server.Redis.RateLimit != 0 {
		t.Error("rate limiting should be disabled by default")
	}
	if cfg.Storage.Shards != DefaultShards {
		t.Errorf("Storage.Shards = %d, want %d", cfg.Storage.Shards, DefaultShards)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *ServerConfig)
		wantErr string
	}{
		{name: "valid defaults", modify: func(c *ServerConfig) {}},
		{name: "empty addr", modify: func(c *ServerConfig) { c.Server.Redis.Addr = "" },
			wantErr: "server.redis.addr is required"},
		{name: "addr without port", modify: func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" },
			wantErr: "server.redis.addr"},
		{name: "addr bad port", modify: func(c *ServerConfig) { c.Server.Redis.Addr = "localhost:99999" },
			wantErr: "invalid port"},
		{name: "buffer too small", modify: func(c *ServerConfig) { c.Server.Redis.Buffer = 8 },
			wantErr: "server.redis.buffer"},
		{name: "negative timeout", modify: func(c *ServerConfig) { c.Server.Redis.ReadTimeout = -time.Second },
			wantErr: "timeouts"},
		{name: "negative rate", modify: func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 },
			wantErr: "server.redis.ratelimit"},
		{name: "burst without rate", modify: func(c *ServerConfig) { c.Server.Redis.Burst = 10 },
			wantErr: "requires server.redis.ratelimit"},
		{name: "rate with burst", modify: func(c *ServerConfig) {
			c.Server.Redis.RateLimit = 100
			c.Server.Redis.Burst = 200
		}},
		{name: "shards not power of two", modify: func(c *ServerConfig) { c.Storage.Shards = 12 },
			wantErr: "storage.shards"},
		{name: "zero shards", modify: func(c *ServerConfig) { c.Storage.Shards = 0 },
			wantErr: "storage.shards"},
		{name: "single shard", modify: func(c *ServerConfig) { c.Storage.Shards = 1 }},
		{name: "metrics bad addr", modify: func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "nope"
		}, wantErr: "metrics.addr"},
		{name: "metrics same addr as redis", modify: func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = c.Server.Redis.Addr
		}, wantErr: "conflicts"},
		{name: "metrics disabled bad addr ignored", modify: func(c *ServerConfig) { c.Metrics.Addr = "nope" }},
		{name: "bad log level", modify: func(c *ServerConfig) { c.Log.Level = "loud" },
			wantErr: "log.level"},
		{name: "bad log format", modify: func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log.format"},
		{name: "log file without size", modify: func(c *ServerConfig) {
			c.Log.File = "/tmp/roar.log"
			c.Log.MaxSize = 0
		}, wantErr: "log.maxsize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Verify() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_Nil(t *testing.T) {
	if err := Verify(nil); err == nil {
		t.Error("Verify(nil) should fail")
	}
}
