package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"pathecho/internal/config"
	"pathecho/internal/httpline"
	"pathecho/internal/metrics"
)

// Server owns the listening socket and serves one width-bounded request-line
// response per accepted connection. Handlers are fire-and-forget goroutines
// with no shared mutable state; the listener never waits for them.
type Server struct {
	cfg config.Config
	lim httpline.Limits
	log *slog.Logger
	ln  net.Listener
}

// New builds a Server from cfg. A nil logger falls back to slog.Default.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg: cfg,
		lim: httpline.Limits{
			MethodCap:  httpline.DefaultLimits.MethodCap,
			PathCap:    cfg.MaxPathLen,
			VersionCap: httpline.DefaultLimits.VersionCap,
		},
		log: logger,
	}
}

// Start binds the TCP listener. A bind or listen failure here is fatal to the
// caller; the server cannot run without its socket.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("server: listen on port %d: %w", s.cfg.Port, err)
	}
	s.ln = ln
	s.log.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, useful when Port 0 picked an ephemeral one.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve runs the accept loop until ctx is cancelled or the listener is
// closed. A failed accept is counted and logged, never fatal: the loop keeps
// going. Each connection is handled in its own goroutine.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server: Serve called before Start")
	}

	stop := context.AfterFunc(ctx, func() {
		s.ln.Close()
	})
	defer stop()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.log.Info("listener stopped")
				return nil
			}
			metrics.AcceptErrors.Inc()
			s.log.Error("accept", "error", err)
			continue
		}
		metrics.ConnectionsTotal.Inc()
		go s.handleConn(conn)
	}
}

// Close shuts the listener down; in-flight handlers finish on their own.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

// handleConn owns one connection start to finish: single read, bounded
// parse, best-effort write, close. Failures stay inside this goroutine — a
// panic is recovered so one bad connection cannot take out the process.
func (s *Server) handleConn(conn net.Conn) {
	connID := uuid.NewString()
	log := s.log.With("conn_id", connID, "remote", conn.RemoteAddr().String())

	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panic", "panic", r)
		}
	}()

	if s.cfg.ReadTimeoutMs > 0 {
		deadline := time.Now().Add(time.Duration(s.cfg.ReadTimeoutMs) * time.Millisecond)
		if err := conn.SetReadDeadline(deadline); err != nil {
			log.Debug("set read deadline", "error", err)
		}
	}

	buf := make([]byte, s.cfg.BufferSize)
	n, err := conn.Read(buf[:s.cfg.BufferSize-1])
	if n <= 0 {
		// Peer disconnected or the read failed; nothing to answer.
		metrics.ReadErrors.Inc()
		if err != nil && !errors.Is(err, io.EOF) {
			log.Debug("read", "error", err)
		}
		return
	}
	metrics.RequestBytes.Observe(float64(n))

	rl := httpline.ParseRequestLine(buf[:n], s.lim)
	if rl.Truncated {
		metrics.PathTruncations.Inc()
	}

	// Best-effort write; the connection is closing either way.
	if _, err := conn.Write(httpline.BuildResponse(rl.Path)); err != nil {
		log.Debug("write", "error", err)
	}
	metrics.ResponsesTotal.WithLabelValues(httpline.ResponseKind(rl.Path)).Inc()

	log.Info("request",
		"method", rl.Method,
		"path", rl.Path,
		"tokens", rl.Tokens,
		"truncated", rl.Truncated,
		"bytes", n,
	)
}
