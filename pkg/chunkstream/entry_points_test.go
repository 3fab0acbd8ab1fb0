package chunkstream_test

import (
	"context"
	"io"
	"testing"

	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/buildbarn/bb-blobstream/pkg/chunkstream"
	"github.com/buildbarn/bb-blobstream/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/mock/gomock"
)

func TestToText(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	source := blob.NewByteSliceSource([]byte(pingText))

	t.Run("Success", func(t *testing.T) {
		stream := chunkstream.ToText(ctx, source, blob.NewDefaultReader())
		r := stream.NewTextReader()

		text, err := r.Read()
		require.NoError(t, err)
		require.Equal(t, pingText, text)

		_, err = r.Read()
		require.Equal(t, io.EOF, err)
		r.Close()
	})

	t.Run("Failure", func(t *testing.T) {
		reader := mock.NewMockReader(ctrl)
		reader.EXPECT().ReadAsText(gomock.Any(), source).Return("", status.Error(codes.PermissionDenied, "Access denied"))
		r := chunkstream.ToText(ctx, source, reader).NewTextReader()
		defer r.Close()

		// The error is reported repeatedly, without any text.
		expectedErr := status.Error(codes.PermissionDenied, "Failed to read bytes [0, 13): Access denied")
		for i := 0; i < 2; i++ {
			text, err := r.Read()
			testutil.RequireEqualStatus(t, expectedErr, err)
			require.Empty(t, text)
		}
	})

	t.Run("IndependentReads", func(t *testing.T) {
		// Every reader performs its own read of the source.
		reader := mock.NewMockReader(ctrl)
		reader.EXPECT().ReadAsText(gomock.Any(), source).Return(pingText, nil).Times(2)
		stream := chunkstream.ToText(ctx, source, reader)

		for i := 0; i < 2; i++ {
			r := stream.NewTextReader()
			text, err := r.Read()
			require.NoError(t, err)
			require.Equal(t, pingText, text)
			r.Close()
		}
	})

	t.Run("ConcurrentReads", func(t *testing.T) {
		// When multiple goroutines call Read() on the same
		// reader, exactly one of them should obtain the text.
		r := chunkstream.ToText(ctx, source, blob.NewDefaultReader()).NewTextReader()
		defer r.Close()

		type readResult struct {
			text string
			err  error
		}
		results := make(chan readResult, 2)
		for i := 0; i < 2; i++ {
			go func() {
				text, err := r.Read()
				results <- readResult{text: text, err: err}
			}()
		}
		first, second := <-results, <-results
		if first.err != nil {
			first, second = second, first
		}
		require.Equal(t, readResult{text: pingText}, first)
		require.Equal(t, readResult{err: io.EOF}, second)
	})

	t.Run("CloseBeforeResult", func(t *testing.T) {
		// Closing the reader while the read is in progress
		// should cancel the read and drop its result.
		reader := mock.NewMockReader(ctrl)
		started := make(chan struct{})
		finished := make(chan struct{})
		reader.EXPECT().ReadAsText(gomock.Any(), source).DoAndReturn(
			func(ctx context.Context, source blob.ByteSource) (string, error) {
				close(started)
				<-ctx.Done()
				close(finished)
				return "", ctx.Err()
			})
		r := chunkstream.ToText(ctx, source, reader).NewTextReader()

		<-started
		r.Close()
		<-finished

		_, err := r.Read()
		testutil.RequireEqualStatus(t, status.Error(codes.Canceled, "Text reader closed"), err)
	})
}
