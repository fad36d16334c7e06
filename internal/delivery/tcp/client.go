package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	ErrTimeout          = errors.New("connection timed out")
	ErrSmallBufferSize  = errors.New("small buffer size")
	ErrConnectionClosed = errors.New("connection closed")
)

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Client represents a TCP client connection.
type Client struct {
	address     string        // Server address.
	connection  net.Conn      // The TCP connection for the client.
	idleTimeout time.Duration // Timeout for idle connection.
	bufferSize  int           // The buffer size for reading data.
}

// NewClient creates a new client with the given address and options.
func NewClient(address string, options ...ClientOption) (*Client, error) {
	client := &Client{
		address:    address,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range options {
		opt(client)
	}

	conn, err := net.Dial("tcp", client.address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	client.connection = conn

	return client, nil
}

// Send sends a request to the server and returns the response.
// The exchange is bounded by the idle timeout and by the ctx deadline, whichever is earlier.
func (c *Client) Send(ctx context.Context, request []byte) ([]byte, error) {
	if c.connection == nil {
		return nil, ErrConnectionClosed
	}

	if len(request) >= c.bufferSize {
		return nil, ErrSmallBufferSize
	}

	if err := c.connection.SetDeadline(c.deadline(ctx)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if _, err := c.connection.Write(request); err != nil {
		if isTimeout(err) {
			return nil, errors.Join(ErrTimeout, err)
		}

		return nil, fmt.Errorf("error writing to connection: %w", err)
	}

	response := make([]byte, c.bufferSize)
	n, err := c.connection.Read(response)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.Join(ErrTimeout, err)
		}

		return nil, fmt.Errorf("error reading from connection: %w", err)
	}

	if n == c.bufferSize {
		return nil, ErrSmallBufferSize
	}

	return response[:n], nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	var deadline time.Time
	if c.idleTimeout > 0 {
		deadline = time.Now().Add(c.idleTimeout)
	}

	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}

	return deadline
}

// Close closes the client connection.
func (c *Client) Close() error {
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			return fmt.Errorf("error closing connection: %w", err)
		}
		c.connection = nil
	}

	return nil
}
