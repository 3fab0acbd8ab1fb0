package blob

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type tracingReader struct {
	base   Reader
	tracer trace.Tracer
}

// NewTracingReader creates a decorator for Reader that creates an
// OpenTelemetry span for every read performed.
func NewTracingReader(base Reader, tracerProvider trace.TracerProvider) Reader {
	return &tracingReader{
		base:   base,
		tracer: tracerProvider.Tracer("github.com/buildbarn/bb-blobstream/pkg/blob"),
	}
}

func (r *tracingReader) startSpan(ctx context.Context, name string, source ByteSource) (context.Context, trace.Span) {
	return r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(attribute.Int64("size_bytes", source.GetSizeBytes())))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *tracingReader) ReadAsBytes(ctx context.Context, source ByteSource) ([]byte, error) {
	ctxWithSpan, span := r.startSpan(ctx, "blob.Reader.ReadAsBytes", source)
	data, err := r.base.ReadAsBytes(ctxWithSpan, source)
	endSpan(span, err)
	return data, err
}

func (r *tracingReader) ReadAsText(ctx context.Context, source ByteSource) (string, error) {
	ctxWithSpan, span := r.startSpan(ctx, "blob.Reader.ReadAsText", source)
	text, err := r.base.ReadAsText(ctxWithSpan, source)
	endSpan(span, err)
	return text, err
}
