package redisserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/roar-go/internal/storage/memory"
	"github.com/yndnr/roar-go/internal/telemetry/logger"
	"github.com/yndnr/roar-go/internal/telemetry/metric"
	"github.com/yndnr/roar-go/pkg/resp"
)

// DefaultAddress is the address the server listens on when none is set.
const DefaultAddress = "0.0.0.0:6379"

// DefaultBufferSize is the size of the per-connection read buffer.
const DefaultBufferSize = 1024

const (
	errBadRequest  = "ERR protocol error: expected array of bulk strings"
	errRateLimited = "ERR rate limit exceeded"

	// unknownLabel replaces unsupported command names in metrics.
	unknownLabel = "unknown"
)

// Accept backoff bounds.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

var (
	// ErrAlreadyListening is returned by Listen on a server that is bound.
	ErrAlreadyListening = errors.New("redisserver: already listening")

	// ErrNotListening is returned by Serve before Listen.
	ErrNotListening = errors.New("redisserver: not listening")

	// ErrServerClosed is returned by Listen and Serve after Shutdown.
	ErrServerClosed = errors.New("redisserver: server closed")
)

// Config holds the server configuration.
type Config struct {
	// Address is the TCP address to listen on.
	Address string
	// BufferSize is the number of bytes read per request.
	BufferSize int
	// KeepAlive keeps a connection open after a reply. When false each
	// connection serves exactly one request.
	KeepAlive bool
	// ReadTimeout bounds the wait for a request (0 = no limit).
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a reply (0 = no limit).
	WriteTimeout time.Duration
	// RateLimit is the number of requests per second allowed per client IP.
	// Set to 0 to disable rate limiting.
	RateLimit int
	// RateBurst is the bucket size per client IP (defaults to RateLimit).
	RateBurst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:    DefaultAddress,
		BufferSize: DefaultBufferSize,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records connection and command metrics in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// Server accepts RESP connections and executes their requests.
type Server struct {
	cfg        Config
	dispatcher *Dispatcher
	logger     *slog.Logger
	metrics    *metric.Registry
	limiter    *ipRateLimiter

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}

	closing atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server that executes requests with dispatcher.
func New(cfg *Config, dispatcher *Dispatcher, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}

	s := &Server{
		cfg:        c,
		dispatcher: dispatcher,
		logger:     slog.Default(),
		limiter:    newIPRateLimiter(c.RateLimit, c.RateBurst),
		conns:      make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe serves store on addr with the default configuration until
// ctx is canceled or the listener closes.
func ListenAndServe(ctx context.Context, addr string, store *memory.Store) error {
	cfg := DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	return New(cfg, NewDispatcher(store)).ListenAndServe(ctx)
}

// ListenAndServe binds the configured address and serves it.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing.Load() {
		return ErrServerClosed
	}
	if s.ln != nil {
		return ErrAlreadyListening
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("redis server listening",
		"address", ln.Addr().String(),
		"keepalive", s.cfg.KeepAlive,
		"rate_limit", s.cfg.RateLimit)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until the listener is closed, either by
// Shutdown or by ctx being canceled. Each connection is handled in its own
// goroutine. Transient accept errors are logged and retried with backoff.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		if s.closing.Load() {
			return ErrServerClosed
		}
		return ErrNotListening
	}

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	var delay time.Duration
	for {
		c, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Warn("accept failed", "error", err, "retry_in", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		delay = 0

		if !s.track(c) {
			_ = c.Close()
			return nil
		}
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, c)
		}()
	}
}

// Shutdown stops accepting, closes every open connection and waits for the
// connection goroutines to exit or ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	var firstErr error

	s.mu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

// track registers c; it reports false once the server is shutting down.
func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	ctx = logger.WithConnID(logger.WithLogger(ctx, s.logger), ulid.Make().String())
	log := logger.L(ctx).With("remote", c.RemoteAddr().String())

	s.metrics.ConnOpened()
	log.Debug("connection opened")
	defer func() {
		_ = c.Close()
		s.untrack(c)
		s.metrics.ConnClosed()
		log.Debug("connection closed")
	}()

	buf := make([]byte, s.cfg.BufferSize)
	for {
		if s.cfg.ReadTimeout > 0 {
			if err := c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
				return
			}
		}
		n, err := c.Read(buf)
		if n == 0 || err != nil {
			if err != nil && !s.closing.Load() && !isEOF(err) {
				log.Debug("connection read error", "error", err)
			}
			return
		}

		reply, ok := s.handle(log, c.RemoteAddr(), buf[:n])
		if !ok {
			return
		}

		if s.cfg.WriteTimeout > 0 {
			if err := c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
				return
			}
		}
		if _, err := c.Write(resp.Encode(reply)); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}

		if !s.cfg.KeepAlive {
			return
		}
	}
}

// handle turns one read into a reply. It reports false when the bytes do
// not frame, in which case the connection must be closed.
func (s *Server) handle(log *slog.Logger, remote net.Addr, b []byte) (resp.Value, bool) {
	values, err := resp.Decode(b)
	if err != nil {
		s.metrics.ProtocolError()
		log.Warn("protocol error", "error", err, "bytes", len(b))
		return resp.Value{}, false
	}

	name, args, ok := splitRequest(values)
	if !ok {
		log.Debug("unexpected request shape")
		return resp.Error(errBadRequest), true
	}

	if !s.limiter.allow(remote) {
		s.metrics.RateLimitHit()
		log.Debug("rate limited", "command", name)
		return resp.Error(errRateLimited), true
	}

	start := time.Now()
	reply := s.dispatcher.Execute(name, args)
	elapsed := time.Since(start)

	label := unknownLabel
	if Known(name) {
		label = strings.ToLower(name)
	}
	s.metrics.ObserveCommand(label, reply.IsError(), elapsed)
	log.Debug("command executed", "command", label, "args", len(args), "error", reply.IsError())

	return reply, true
}

// splitRequest extracts the command name and arguments from the first
// decoded value. Only an array led by a string is a request.
func splitRequest(values []resp.Value) (string, []resp.Value, bool) {
	if len(values) == 0 || values[0].Kind != resp.KindArray {
		return "", nil, false
	}
	elems := values[0].Elems
	if len(elems) == 0 {
		return "", nil, false
	}
	switch elems[0].Kind {
	case resp.KindBulkString, resp.KindSimpleString:
		return elems[0].Str, elems[1:], true
	default:
		return "", nil, false
	}
}

func isEOF(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF)
}
