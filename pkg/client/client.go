package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/neekrasov/idgen/internal/compute"
	"github.com/neekrasov/idgen/internal/delivery/tcp"
	"github.com/neekrasov/idgen/internal/node"
	"github.com/neekrasov/idgen/pkg/sizeutil"
	"github.com/neekrasov/idgen/pkg/snowflake"
)

const defaultReconnectBaseDelay = 100 * time.Millisecond

var (
	ErrWriteLineFailed      = errors.New("write line failed")
	ErrMaxReconnects        = errors.New("max reconnect attempts reached")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrServer               = errors.New("server error")
	ErrUnexpectedResponse   = errors.New("unexpected response")
)

// NetClient - interface for network client.
type NetClient interface {
	Send(ctx context.Context, request []byte) ([]byte, error)
	Close() error
}

// ClientFactory - opens network clients.
type ClientFactory interface {
	Make(address string, opts ...tcp.ClientOption) (NetClient, error)
}

// TCPClientFactory - opens plain TCP connections.
type TCPClientFactory struct{}

func (TCPClientFactory) Make(address string, opts ...tcp.ClientOption) (NetClient, error) {
	return tcp.NewClient(address, opts...)
}

// Config holds the configuration settings for the idgen client.
type Config struct {
	Username             string        `json:"username"`
	Password             string        `json:"password"`
	Address              string        `json:"address"`              // Address of the idgen node.
	IdleTimeout          time.Duration `json:"idleTimeout"`          // Idle timeout for the client connection.
	MaxMessageSize       string        `json:"maxMessageSize"`       // Maximum message size for client communication.
	MaxReconnectAttempts int           `json:"maxReconnectAttempts"` // Reconnects tried after a failed send.
	ReconnectBaseDelay   time.Duration `json:"reconnectBaseDelay"`   // First backoff delay, doubled per attempt.
}

// IDGenClient represents a client for requesting ids from an idgen node.
type IDGenClient struct {
	cfg     *Config
	factory ClientFactory
	opts    []tcp.ClientOption
	client  NetClient
}

// New creates a client, connects and logs in when credentials are set.
func New(cfg *Config, factory ClientFactory) (*IDGenClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("empty address")
	}

	opts := make([]tcp.ClientOption, 0)
	if cfg.IdleTimeout > 0 {
		opts = append(opts, tcp.WithClientIdleTimeout(cfg.IdleTimeout))
	}

	if cfg.MaxMessageSize != "" {
		size, err := sizeutil.ParseSize(cfg.MaxMessageSize)
		if err != nil {
			return nil, fmt.Errorf("parse max message size '%s' failed: %w", cfg.MaxMessageSize, err)
		}
		opts = append(opts, tcp.WithClientBufferSize(uint(size)))
	}

	c := &IDGenClient{cfg: cfg, factory: factory, opts: opts}
	if err := c.connect(context.Background()); err != nil {
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	return c, nil
}

func (c *IDGenClient) connect(ctx context.Context) error {
	client, err := c.factory.Make(c.cfg.Address, c.opts...)
	if err != nil {
		return err
	}

	if c.cfg.Username != "" {
		query := compute.CommandAUTH.Make(c.cfg.Username, c.cfg.Password)
		response, err := client.Send(ctx, []byte(query))
		if err != nil {
			client.Close()
			return err
		}

		if msg, failed := node.CutError(string(response)); failed {
			client.Close()
			return fmt.Errorf("%w: %s", ErrAuthenticationFailed, msg)
		}
	}

	c.client = client
	return nil
}

// Send sends a raw query and returns the raw response, reconnecting on transport failures.
func (c *IDGenClient) Send(ctx context.Context, query string) (string, error) {
	response, err := c.client.Send(ctx, []byte(query))
	if err == nil {
		return string(response), nil
	}

	if errors.Is(err, tcp.ErrSmallBufferSize) {
		return "", err
	}

	delay := c.cfg.ReconnectBaseDelay
	if delay <= 0 {
		delay = defaultReconnectBaseDelay
	}

	for attempt := 0; attempt < c.cfg.MaxReconnectAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", errors.Join(ctx.Err(), err)
		case <-time.After(delay << attempt):
		}

		c.client.Close()
		if cerr := c.connect(ctx); cerr != nil {
			err = cerr
			continue
		}

		if response, err = c.client.Send(ctx, []byte(query)); err == nil {
			return string(response), nil
		}
	}

	return "", errors.Join(ErrMaxReconnects, err)
}

// Next requests a single id.
func (c *IDGenClient) Next(ctx context.Context) (snowflake.ID, error) {
	msg, err := c.call(ctx, compute.CommandNEXT.Make())
	if err != nil {
		return 0, err
	}

	return snowflake.ParseID(msg)
}

// NextBatch requests n ids.
func (c *IDGenClient) NextBatch(ctx context.Context, n int) ([]snowflake.ID, error) {
	msg, err := c.call(ctx, compute.CommandNEXT.Make(strconv.Itoa(n)))
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(msg)
	ids := make([]snowflake.ID, 0, len(fields))
	for _, field := range fields {
		id, err := snowflake.ParseID(field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Decode asks the node to describe an id.
func (c *IDGenClient) Decode(ctx context.Context, id snowflake.ID) (string, error) {
	return c.call(ctx, compute.CommandDECODE.Make(id.String()))
}

func (c *IDGenClient) call(ctx context.Context, query string) (string, error) {
	response, err := c.Send(ctx, query)
	if err != nil {
		return "", err
	}

	if msg, failed := node.CutError(response); failed {
		return "", fmt.Errorf("%w: %s", ErrServer, msg)
	}

	msg, ok := node.CutOK(response)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedResponse, response)
	}

	return msg, nil
}

// CLI runs a command-line interface for interacting with the node.
func (c *IDGenClient) CLI(rl *readline.Instance) error {
	defer func() {
		rl.Close()

		if err := c.Close(); err != nil {
			_, _ = rl.Write([]byte(fmt.Sprintf("failed to close client connection: %s\n", err.Error())))
		}
	}()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}

		if query == "exit" {
			return nil
		}

		response, err := c.Send(context.Background(), query)
		if err != nil {
			if errors.Is(err, syscall.EPIPE) ||
				errors.Is(err, tcp.ErrTimeout) ||
				errors.Is(err, syscall.ECONNRESET) ||
				errors.Is(err, ErrMaxReconnects) {
				return err
			}

			if _, err = rl.Write([]byte(fmt.Sprintf("failed to send query: %s\n", err.Error()))); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		if _, err = rl.Write([]byte(response + "\n")); err != nil {
			return errors.Join(ErrWriteLineFailed, err)
		}
	}
}

// Close - closes the connection to the node.
func (c *IDGenClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}

	return nil
}
