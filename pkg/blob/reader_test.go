package blob_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/buildbarn/bb-blobstream/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/mock/gomock"
)

func TestDefaultReaderReadAsBytes(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	reader := blob.NewDefaultReader()

	t.Run("Success", func(t *testing.T) {
		data, err := reader.ReadAsBytes(ctx, blob.NewByteSliceSource([]byte("Hello")))
		require.NoError(t, err)
		require.Equal(t, []byte("Hello"), data)
	})

	t.Run("Empty", func(t *testing.T) {
		data, err := reader.ReadAsBytes(ctx, blob.NewByteSliceSource(nil))
		require.NoError(t, err)
		require.Empty(t, data)
	})

	t.Run("OpenFailure", func(t *testing.T) {
		source := mock.NewMockByteSource(ctrl)
		source.EXPECT().GetSizeBytes().Return(int64(5))
		source.EXPECT().NewReader(ctx).Return(nil, status.Error(codes.Unavailable, "Server offline"))

		_, err := reader.ReadAsBytes(ctx, source)
		testutil.RequireEqualStatus(t, status.Error(codes.Unavailable, "Server offline"), err)
	})

	t.Run("ReadFailure", func(t *testing.T) {
		source := mock.NewMockByteSource(ctrl)
		source.EXPECT().GetSizeBytes().Return(int64(5))
		r := mock.NewMockReadCloser(ctrl)
		source.EXPECT().NewReader(ctx).Return(r, nil)
		r.EXPECT().Read(gomock.Any()).Return(0, errors.New("Disk on fire"))
		r.EXPECT().Close()

		_, err := reader.ReadAsBytes(ctx, source)
		testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Disk on fire"), err)
	})

	t.Run("ShortRead", func(t *testing.T) {
		// A source that yields less data than it announced
		// should not cause truncated data to be returned.
		source := mock.NewMockByteSource(ctrl)
		source.EXPECT().GetSizeBytes().Return(int64(10))
		source.EXPECT().NewReader(ctx).Return(io.NopCloser(strings.NewReader("Hello")), nil)

		_, err := reader.ReadAsBytes(ctx, source)
		testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Byte source is 10 bytes in size, while only 5 bytes could be read"), err)
	})

	t.Run("LongRead", func(t *testing.T) {
		// A source that yields more data than it announced,
		// such as a server that ignores the requested range,
		// should not cause truncated data to be returned.
		source := mock.NewMockByteSource(ctrl)
		source.EXPECT().GetSizeBytes().Return(int64(5))
		source.EXPECT().NewReader(ctx).Return(io.NopCloser(strings.NewReader("Hello world")), nil)

		_, err := reader.ReadAsBytes(ctx, source)
		testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Byte source is 5 bytes in size, while more than 5 bytes were read"), err)
	})
}

func TestDefaultReaderReadAsText(t *testing.T) {
	ctx := context.Background()
	reader := blob.NewDefaultReader()

	t.Run("Success", func(t *testing.T) {
		text, err := reader.ReadAsText(ctx, blob.NewByteSliceSource([]byte("héllo")))
		require.NoError(t, err)
		require.Equal(t, "héllo", text)
	})

	t.Run("ByteOrderMark", func(t *testing.T) {
		text, err := reader.ReadAsText(ctx, blob.NewByteSliceSource([]byte("\xef\xbb\xbfhello")))
		require.NoError(t, err)
		require.Equal(t, "hello", text)
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		text, err := reader.ReadAsText(ctx, blob.NewByteSliceSource([]byte("hello\xff")))
		require.NoError(t, err)
		require.Equal(t, "hello�", text)
	})

	t.Run("Slice", func(t *testing.T) {
		text, err := reader.ReadAsText(ctx, blob.NewByteSliceSource([]byte("Hello, world")).Slice(7, 12))
		require.NoError(t, err)
		require.Equal(t, "world", text)
	})
}
