package global

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type logSpanExporter struct {
	logger *zap.Logger
}

// NewLogSpanExporter creates an OpenTelemetry span exporter that
// writes finished spans to a log at the debug level. This is noisy and
// only intended for basic debugging.
func NewLogSpanExporter(logger *zap.Logger) sdktrace.SpanExporter {
	return logSpanExporter{logger: logger}
}

func (e logSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := []zap.Field{
			zap.String("name", span.Name()),
			zap.Stringer("trace_id", span.SpanContext().TraceID()),
			zap.Stringer("span_id", span.SpanContext().SpanID()),
			zap.Duration("duration", span.EndTime().Sub(span.StartTime())),
			zap.String("status", span.Status().Code.String()),
		}
		if description := span.Status().Description; description != "" {
			fields = append(fields, zap.String("status_description", description))
		}
		for _, kv := range span.Attributes() {
			fields = append(fields, attributeToField(kv))
		}
		e.logger.Debug("Span finished", fields...)
	}
	return nil
}

func (logSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

func attributeToField(kv attribute.KeyValue) zap.Field {
	key := "attribute." + string(kv.Key)
	switch kv.Value.Type() {
	case attribute.BOOL:
		return zap.Bool(key, kv.Value.AsBool())
	case attribute.INT64:
		return zap.Int64(key, kv.Value.AsInt64())
	case attribute.FLOAT64:
		return zap.Float64(key, kv.Value.AsFloat64())
	default:
		return zap.String(key, kv.Value.Emit())
	}
}
