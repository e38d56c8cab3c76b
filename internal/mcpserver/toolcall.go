package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// toolRequest is one line of the stdio protocol's request stream.
type toolRequest struct {
	ID        string          `json:"id"`
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
}

// toolResponse is one line of the stdio protocol's response stream.
type toolResponse struct {
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// toolHandler implements one callable tool's business logic. It
// receives the raw JSON arguments and returns a JSON-marshalable
// result or an error.
type toolHandler func(ctx context.Context, s *Server, args json.RawMessage) (interface{}, error)

// dispatchTool runs req.Tool under a guarded scope that logs start,
// end, duration, and OK/ERROR, and wraps the call in an OTel span —
// the "bracketed guarded scope" §4.7 requires for every tool call.
func (s *Server) dispatchTool(ctx context.Context, req toolRequest) toolResponse {
	handler, ok := toolRegistry[req.Tool]
	if !ok {
		return toolResponse{ID: req.ID, Error: "unknown tool: " + req.Tool}
	}

	ctx, span := s.tracer.Start(ctx, "mcp.tool."+req.Tool)
	defer span.End()

	start := time.Now()
	s.logSafe(func() { s.logger.Info("tool call start", zap.String("tool", req.Tool), zap.String("id", req.ID)) })

	result, err := handler(ctx, s, req.Arguments)
	duration := time.Since(start)

	if err != nil {
		s.logSafe(func() {
			s.logger.Error("tool call end",
				zap.String("tool", req.Tool), zap.String("id", req.ID),
				zap.Duration("duration", duration), zap.String("status", "ERROR"), zap.Error(err))
		})
		return toolResponse{ID: req.ID, Error: err.Error()}
	}

	s.logSafe(func() {
		s.logger.Info("tool call end",
			zap.String("tool", req.Tool), zap.String("id", req.ID),
			zap.Duration("duration", duration), zap.String("status", "OK"))
	})

	data, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return toolResponse{ID: req.ID, Error: marshalErr.Error()}
	}
	return toolResponse{ID: req.ID, Result: data}
}
