package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/roar-go/internal/infra/buildinfo"
	"github.com/yndnr/roar-go/internal/infra/confloader"
	"github.com/yndnr/roar-go/internal/infra/shutdown"
	"github.com/yndnr/roar-go/internal/server/config"
	"github.com/yndnr/roar-go/internal/server/httpserver"
	"github.com/yndnr/roar-go/internal/server/redisserver"
	"github.com/yndnr/roar-go/internal/storage/memory"
	"github.com/yndnr/roar-go/internal/telemetry/logger"
	"github.com/yndnr/roar-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "roar-server",
		Usage:   "in-memory key-value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
				EnvVars: []string{"ROAR_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "RESP listen address (overrides server.redis.addr)",
			},
			&cli.BoolFlag{
				Name:  "keepalive",
				Usage: "serve several requests per connection",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides log.level)",
			},
		},
		Action: run,
	}
}

// overrides maps explicitly set flags onto config keys.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("addr") {
		m["server.redis.addr"] = c.String("addr")
	}
	if c.IsSet("keepalive") {
		m["server.redis.keepalive"] = c.Bool("keepalive")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	return m
}

func run(c *cli.Context) error {
	opts := []confloader.Option{confloader.WithOverrides(overrides(c))}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	cfg, err := loadConfig(loader)
	if err != nil {
		return err
	}

	log, logCloser, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting roar-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", loader.FilePath())

	store := memory.New(memory.WithShards(cfg.Storage.Shards))

	var reg *metric.Registry
	if cfg.Metrics.Enabled {
		reg = metric.NewRegistry()
		reg.MustRegister(
			metric.NewStoreCollector(store),
			metric.NewBuildInfo(info.Version, info.Commit, info.GoVersion),
		)
	}

	srv := redisserver.New(redisConfig(&cfg.Server.Redis), redisserver.NewDispatcher(store),
		redisserver.WithLogger(log), redisserver.WithMetrics(reg))
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Redis.Addr, err)
	}

	handler := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(log))

	// Hooks run in reverse registration order.
	handler.OnShutdown("log", func(context.Context) error {
		return logCloser.Close()
	})

	handler.OnShutdown("redis", srv.Shutdown)

	ctx := context.Background()
	go func() {
		log.Info("redis server listening", "addr", srv.Addr().String(), "keepalive", cfg.Server.Redis.KeepAlive)
		if err := srv.Serve(ctx); err != nil {
			log.Error("redis server error", "error", err)
			handler.Trigger()
		}
	}()

	if reg != nil {
		hs := httpserver.New(cfg.Metrics.Addr, reg.Handler())
		if err := hs.Listen(); err != nil {
			_ = srv.Shutdown(ctx)
			return fmt.Errorf("listen metrics %s: %w", cfg.Metrics.Addr, err)
		}
		handler.OnShutdown("metrics", hs.Shutdown)
		go func() {
			log.Info("metrics server listening", "addr", hs.Addr().String())
			if err := hs.Serve(); err != nil {
				log.Error("metrics server error", "error", err)
			}
		}()
	}

	if path := loader.FilePath(); path != "" {
		w, err := watchConfig(loader, path, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			handler.OnShutdown("config-watcher", func(context.Context) error {
				return w.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := handler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

func loadConfig(loader *confloader.Loader) (*config.ServerConfig, error) {
	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.ServerConfig) (*slog.Logger, io.Closer, error) {
	lc := logger.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format
	lc.Output = os.Stdout
	lc.File = cfg.Log.File
	lc.MaxSizeMB = cfg.Log.MaxSize
	lc.MaxBackups = cfg.Log.MaxBackups
	lc.MaxAgeDays = cfg.Log.MaxAge
	lc.Compress = cfg.Log.Compress
	return logger.New(lc)
}

func redisConfig(rc *config.RedisConfig) *redisserver.Config {
	return &redisserver.Config{
		Address:      rc.Addr,
		BufferSize:   rc.Buffer,
		KeepAlive:    rc.KeepAlive,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
		RateLimit:    rc.RateLimit,
		RateBurst:    rc.Burst,
	}
}

// watchConfig re-applies the log level whenever the config file changes.
// Listener settings need a restart.
func watchConfig(loader *confloader.Loader, path string, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		return nil, errors.Join(err, w.Stop())
	}

	w.OnChange(func(string) {
		cfg := config.Default()
		if err := loader.Reload(cfg); err != nil {
			log.Error("reload config", "error", err)
			return
		}
		if err := config.Verify(cfg); err != nil {
			log.Error("reloaded config rejected", "error", err)
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Error("apply log level", "error", err)
			return
		}
		log.Info("configuration reloaded", "log_level", logger.GetLevel())
	})
	w.StartAsync()
	return w, nil
}
