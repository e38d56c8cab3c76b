// Package mcpserver implements the long-lived MCP server: a framed
// JSON-over-stdio process exposing the task store's operations as
// callable tools, with a background heartbeat and rotating log file.
// The process lifecycle (signal handling, ticker select loop, shutdown
// notifier) is grounded on the teacher's cmd/bd/daemon_server.go
// runEventLoop.
package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/store/sqlite"
)

const heartbeatInterval = 30 * time.Second

// Server is the MCP server process: one task store, one log file, one
// heartbeat goroutine, and a dispatch table of callable tools.
type Server struct {
	paths  *config.Paths
	store  *sqlite.Store
	logger *zap.Logger
	tracer trace.Tracer

	logMu sync.Mutex // guards interleaved writes per §5

	in  io.Reader
	out io.Writer
}

// New builds a Server over paths and store, writing logs to the
// project's data directory and tracing spans to an in-process OTel
// tracer provider (stdout exporter when debug logging is enabled).
func New(paths *config.Paths, store *sqlite.Store, debugLogging bool) *Server {
	logger := newLogger(paths.LogPath())

	tracer := noop.NewTracerProvider().Tracer("mcpserver")
	if debugLogging {
		if tp, err := newStdoutTracerProvider(); err == nil {
			tracer = tp.Tracer("mcpserver")
			otel.SetTracerProvider(tp)
		}
	}

	return &Server{
		paths:  paths,
		store:  store,
		logger: logger,
		tracer: tracer,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

func newStdoutTracerProvider() (*sdktrace.TracerProvider, error) {
	exp, err := newStdoutExporter()
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp)), nil
}

// Run starts the heartbeat goroutine and the stdio message loop, and
// blocks until ctx is canceled or a fatal transport error occurs. On
// return, the heartbeat file is removed.
func (s *Server) Run(ctx context.Context) error {
	defer s.installPanicHook()()

	pid := os.Getpid()
	if err := writeHeartbeat(s.paths.HeartbeatPath(), pid, time.Now()); err != nil {
		s.logSafe(func() { s.logger.Error("initial heartbeat write failed", zap.Error(err)) })
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	readErrCh := make(chan error, 1)
	go func() {
		readErrCh <- s.readLoop(ctx)
	}()

	for {
		select {
		case <-ticker.C:
			if err := writeHeartbeat(s.paths.HeartbeatPath(), pid, time.Now()); err != nil {
				s.logSafe(func() { s.logger.Error("heartbeat write failed", zap.Error(err)) })
			}
		case sig := <-sigCh:
			s.logSafe(func() { s.logger.Info("shutting down on signal", zap.String("signal", sig.String())) })
			cancel()
			_ = removeHeartbeat(s.paths.HeartbeatPath())
			return nil
		case err := <-readErrCh:
			cancel()
			_ = removeHeartbeat(s.paths.HeartbeatPath())
			return err
		case <-ctx.Done():
			_ = removeHeartbeat(s.paths.HeartbeatPath())
			return ctx.Err()
		}
	}
}

// readLoop reads newline-delimited JSON request objects from s.in and
// writes one JSON response object per line to s.out, the stdio framing
// MCP clients speak.
func (s *Server) readLoop(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req toolRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(toolResponse{Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}

		resp := s.dispatchTool(ctx, req)
		s.writeResponse(resp)
	}
	return scanner.Err()
}

func (s *Server) writeResponse(resp toolResponse) {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = s.out.Write(data)
}

// logSafe serializes log writes through logMu, since heartbeat and
// request-handling goroutines both write to the same zap core (§5).
func (s *Server) logSafe(fn func()) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	fn()
}

// installPanicHook returns a deferred function that recovers a panic
// escaping Run, logging its payload, location, and backtrace before
// re-raising so the process still exits non-zero.
func (s *Server) installPanicHook() func() {
	return func() {
		if r := recover(); r != nil {
			s.logSafe(func() {
				s.logger.Error("panic in mcp server",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			})
			_ = removeHeartbeat(s.paths.HeartbeatPath())
			panic(r)
		}
	}
}
