package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/roar-go/pkg/resp"
)

// DefaultAddress is the server address used when none is given.
const DefaultAddress = "127.0.0.1:6379"

// DefaultTimeout bounds one command round trip.
const DefaultTimeout = 5 * time.Second

// ErrEmptyCommand is returned by Do without arguments.
var ErrEmptyCommand = errors.New("connection: empty command")

// Client sends commands to a roar server.
type Client struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewClient creates a client for addr. A non-positive timeout means
// DefaultTimeout.
func NewClient(addr string, timeout time.Duration) *Client {
	if addr == "" {
		addr = DefaultAddress
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{addr: addr, timeout: timeout}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends args as one request and returns the reply.
//
// Error replies are returned as values, not as errors; err is set only for
// dial, I/O and framing failures.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, ErrEmptyCommand
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return resp.Value{}, fmt.Errorf("connect %s: %w", c.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if err := resp.Write(conn, resp.Command(args...)); err != nil {
		return resp.Value{}, fmt.Errorf("send: %w", err)
	}

	reply, err := resp.NewReader(conn).ReadValue()
	if err != nil {
		return resp.Value{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}

// Ping checks that the server answers PONG.
func (c *Client) Ping(ctx context.Context) error {
	v, err := c.Do(ctx, "PING")
	if err != nil {
		return err
	}
	if s, _ := v.Text(); v.Kind != resp.KindSimpleString || s != "PONG" {
		return fmt.Errorf("unexpected PING reply %v", v)
	}
	return nil
}
