package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyRedis(&cfg.Server.Redis); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics, cfg.Server.Redis.Addr); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyRedis(cfg *RedisConfig) error {
	if err := verifyAddr("server.redis.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.Buffer < MinBufferSize || cfg.Buffer > MaxBufferSize {
		return fmt.Errorf("server.redis.buffer must be between %d and %d, got %d",
			MinBufferSize, MaxBufferSize, cfg.Buffer)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 {
		return errors.New("server.redis timeouts must not be negative")
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("server.redis.ratelimit must not be negative, got %d", cfg.RateLimit)
	}
	if cfg.Burst < 0 {
		return fmt.Errorf("server.redis.burst must not be negative, got %d", cfg.Burst)
	}
	if cfg.Burst > 0 && cfg.RateLimit == 0 {
		return errors.New("server.redis.burst requires server.redis.ratelimit")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	n := cfg.Shards
	if n < 1 || n > MaxShards || n&(n-1) != 0 {
		return fmt.Errorf("storage.shards must be a power of two between 1 and %d, got %d", MaxShards, n)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection, redisAddr string) error {
	if !cfg.Enabled {
		return nil
	}
	if err := verifyAddr("metrics.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.Addr == redisAddr {
		return fmt.Errorf("metrics.addr conflicts with server.redis.addr (%s)", cfg.Addr)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", cfg.Format)
	}
	if cfg.File != "" && cfg.MaxSize < 1 {
		return errors.New("log.maxsize must be at least 1 when log.file is set")
	}
	if cfg.MaxBackups < 0 || cfg.MaxAge < 0 {
		return errors.New("log.maxbackups and log.maxage must not be negative")
	}
	return nil
}

func verifyAddr(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", field)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("%s: invalid port %q", field, port)
	}
	return nil
}
