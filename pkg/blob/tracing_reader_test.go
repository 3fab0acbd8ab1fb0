package blob_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.opentelemetry.io/otel/attribute"
	otel_codes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestTracingReader(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	spanRecorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	baseReader := mock.NewMockReader(ctrl)
	reader := blob.NewTracingReader(baseReader, tracerProvider)
	source := blob.NewByteSliceSource([]byte("Hello"))

	t.Run("Success", func(t *testing.T) {
		baseReader.EXPECT().ReadAsBytes(gomock.Any(), source).Return([]byte("Hello"), nil)

		data, err := reader.ReadAsBytes(ctx, source)
		require.NoError(t, err)
		require.Equal(t, []byte("Hello"), data)

		spans := spanRecorder.Ended()
		require.Len(t, spans, 1)
		require.Equal(t, "blob.Reader.ReadAsBytes", spans[0].Name())
		require.Equal(t, []attribute.KeyValue{attribute.Int64("size_bytes", 5)}, spans[0].Attributes())
		require.Equal(t, otel_codes.Unset, spans[0].Status().Code)
	})

	t.Run("Failure", func(t *testing.T) {
		baseReader.EXPECT().ReadAsText(gomock.Any(), source).Return("", status.Error(codes.Unavailable, "Server offline"))

		_, err := reader.ReadAsText(ctx, source)
		require.Equal(t, codes.Unavailable, status.Code(err))

		spans := spanRecorder.Ended()
		require.Len(t, spans, 2)
		require.Equal(t, "blob.Reader.ReadAsText", spans[1].Name())
		require.Equal(t, otel_codes.Error, spans[1].Status().Code)
		require.Len(t, spans[1].Events(), 1)
	})
}
