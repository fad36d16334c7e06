package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neekrasov/idgen/internal/node"
	"github.com/neekrasov/idgen/pkg/ctxutil"
	"github.com/neekrasov/idgen/pkg/logger"
	pkgsync "github.com/neekrasov/idgen/pkg/sync"
	"go.uber.org/zap"
)

// ErrBufferOverflow - request filled the whole read buffer.
var ErrBufferOverflow = errors.New("buffer overflow")

// QueryHandler - executes queries received over a connection.
type QueryHandler interface {
	HandleQuery(ctx context.Context, query string) string
	Login(ctx context.Context, query string) error
	AuthRequired() bool
}

// Server - a TCP server serving id queries with connection management and optional authentication.
type Server struct {
	handler        QueryHandler
	idleTimeout    time.Duration
	bufferSize     uint
	maxConnections uint
	semaphore      *pkgsync.Semaphore

	sessions          atomic.Uint64
	activeConnections atomic.Int32
	wg                sync.WaitGroup
}

// NewServer - creates a new instance of the TCP server.
func NewServer(handler QueryHandler, opts ...ServerOption) *Server {
	server := &Server{
		handler:    handler,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(server)
	}

	if mcons := server.maxConnections; mcons > 0 {
		server.semaphore = pkgsync.NewSemaphore(mcons)
	}

	return server
}

// Start - listens on address and serves connections until ctx is done.
// It returns after every connection has been closed.
func (s *Server) Start(ctx context.Context, address string) error {
	if address == "" {
		return errors.New("empty address")
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to start TCP server: %w", err)
	}

	return s.Serve(ctx, listener)
}

// Serve - accepts connections on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger.Info("start server listening", zap.Stringer("addr", listener.Addr()))

	stop := context.AfterFunc(ctx, func() {
		logger.Info("shutting down server...")
		listener.Close()
	})
	defer stop()
	defer s.wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				logger.Info("server stopped accepting new connections")
				return nil
			}

			logger.Warn("failed to accept connection", zap.Error(err))
			continue
		}
		logger.Debug("accept connection", zap.Stringer("remote_addr", conn.RemoteAddr()))

		if err := s.semaphore.Acquire(ctx); err != nil {
			conn.Close()
			continue
		}

		s.activeConnections.Add(1)
		s.wg.Add(1)
		go func() {
			defer func() {
				s.semaphore.Release()
				s.activeConnections.Add(-1)
				s.wg.Done()
			}()
			s.handleConnection(ctx, conn)
		}()
	}
}

// handleConnection - manages a single client connection lifecycle.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		stop()

		if v := recover(); v != nil {
			logger.Error("captured panic", zap.Any("panic", v), zap.String("stack", string(debug.Stack())))
		}

		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Warn("failed to close connection", zap.Error(err))
		}

		logger.Debug("client disconnected", zap.Stringer("address", conn.RemoteAddr()))
	}()

	ctx = ctxutil.InjectSessionID(ctx, strconv.FormatUint(s.sessions.Add(1), 10))
	ctx = ctxutil.InjectRemoteAddr(ctx, conn.RemoteAddr().String())

	authenticated := !s.handler.AuthRequired()
	buffer := make([]byte, s.bufferSize)
	for ctx.Err() == nil {
		n, err := s.read(conn, buffer)
		if err != nil {
			return
		}

		query := string(buffer[:n])
		if !authenticated {
			if err := s.handleLogin(ctx, conn, query); err != nil {
				return
			}

			authenticated = true
			continue
		}

		response := s.handler.HandleQuery(ctx, query)
		if _, err := conn.Write([]byte(response)); err != nil {
			logger.Warn("failed to write data", zap.Stringer("address", conn.RemoteAddr()), zap.Error(err))
			return
		}
	}
}

// handleLogin - authenticates the connection; a failed attempt ends the session.
func (s *Server) handleLogin(ctx context.Context, conn net.Conn, query string) error {
	if err := s.handler.Login(ctx, query); err != nil {
		if _, werr := conn.Write([]byte(node.WrapError(err))); werr != nil {
			logger.Warn("failed to write data", zap.Stringer("address", conn.RemoteAddr()), zap.Error(werr))
		}
		return err
	}

	if _, err := conn.Write([]byte(node.WrapOK("authentication successful"))); err != nil {
		logger.Warn("failed to write data", zap.Stringer("address", conn.RemoteAddr()), zap.Error(err))
		return err
	}

	return nil
}

// read - reads data from a connection with timeout handling and buffer overflow protection.
func (s *Server) read(conn net.Conn, b []byte) (int, error) {
	if s.idleTimeout != 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
			logger.Warn("failed to set read deadline", zap.Error(err))
			return 0, err
		}
	}

	n, err := conn.Read(b)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			logger.Warn("connection timed out", zap.Stringer("remote_addr", conn.RemoteAddr()))
			return 0, err
		}

		if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
			logger.Error("error reading from connection", zap.Error(err))
		}
		return 0, err
	}

	if n == int(s.bufferSize) {
		logger.Warn("buffer overflow", zap.Int("buffer_size_bytes", int(s.bufferSize)))
		return 0, ErrBufferOverflow
	}

	return n, nil
}

// ActiveConnections - returns the current number of active connections.
func (s *Server) ActiveConnections() int32 {
	return s.activeConnections.Load()
}
