package mcpserver

import (
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// newStdoutExporter builds the span exporter used when debug logging
// is on: a plain stdout exporter suitable for local inspection,
// reusing the OTel SDK the teacher already depends on for hook spans
// (internal/hooks/hooks_otel.go).
func newStdoutExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}
