package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/neekrasov/idgen/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server exposes /metrics and /healthz over HTTP.
type Server struct {
	reg  *prometheus.Registry
	http *http.Server
}

// NewServer registers the collector on a private registry along with the Go runtime collectors.
func NewServer(src StatsSource) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewCollector(src),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

	return &Server{
		reg:  reg,
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
	}
}

func (s *Server) Registry() *prometheus.Registry {
	return s.reg
}

// Start - listens on address and serves until ctx is done.
func (s *Server) Start(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen metrics: %w", err)
	}

	return s.Serve(ctx, listener)
}

// Serve - serves on the listener until ctx is done, then shuts the HTTP server down.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger.Info("metrics server started", zap.Stringer("address", listener.Addr()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}

	<-errCh
	logger.Info("metrics server stopped")
	return nil
}
