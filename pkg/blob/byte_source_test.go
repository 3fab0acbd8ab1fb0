package blob_test

import (
	"context"
	"io"
	"testing"

	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/stretchr/testify/require"
)

func readSource(t *testing.T, source blob.ByteSource) string {
	data, err := blob.NewDefaultReader().ReadAsBytes(context.Background(), source)
	require.NoError(t, err)
	return string(data)
}

func TestByteSliceSource(t *testing.T) {
	source := blob.NewByteSliceSource([]byte("Hello, world"))

	t.Run("Whole", func(t *testing.T) {
		require.Equal(t, int64(12), source.GetSizeBytes())
		require.Equal(t, "Hello, world", readSource(t, source))
	})

	t.Run("Slice", func(t *testing.T) {
		slice := source.Slice(7, 12)
		require.Equal(t, int64(5), slice.GetSizeBytes())
		require.Equal(t, "world", readSource(t, slice))
	})

	t.Run("NestedSlice", func(t *testing.T) {
		slice := source.Slice(2, 10).Slice(3, 6)
		require.Equal(t, ", w", readSource(t, slice))
	})

	t.Run("ClampEnd", func(t *testing.T) {
		require.Equal(t, "world", readSource(t, source.Slice(7, 1000)))
	})

	t.Run("ClampStart", func(t *testing.T) {
		require.Equal(t, "Hello", readSource(t, source.Slice(-5, 5)))
	})

	t.Run("Inverted", func(t *testing.T) {
		slice := source.Slice(8, 4)
		require.Equal(t, int64(0), slice.GetSizeBytes())
		require.Equal(t, "", readSource(t, slice))
	})

	t.Run("SliceIsolation", func(t *testing.T) {
		// Reading a slice must never yield any bytes beyond its
		// end, even if the slice's reader is drained.
		r, err := source.Slice(0, 5).NewReader(context.Background())
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, "Hello", string(data))
		require.NoError(t, r.Close())
	})
}

func TestRangeByteSource(t *testing.T) {
	data := "The quick brown fox"
	type rangeRequest struct {
		offsetBytes int64
		sizeBytes   int64
	}
	var requests []rangeRequest
	source := blob.NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			requests = append(requests, rangeRequest{offsetBytes, sizeBytes})
			return blob.NewByteSliceSource([]byte(data)).Slice(offsetBytes, offsetBytes+sizeBytes).NewReader(ctx)
		},
		int64(len(data)))

	t.Run("NestedSlice", func(t *testing.T) {
		requests = nil
		require.Equal(t, "brown", readSource(t, source.Slice(4, 19).Slice(6, 11)))
		require.Equal(t, []rangeRequest{{10, 5}}, requests)
	})

	t.Run("EmptySlice", func(t *testing.T) {
		// Empty ranges should not reach the backend.
		requests = nil
		require.Equal(t, "", readSource(t, source.Slice(5, 5)))
		require.Empty(t, requests)
	})

	t.Run("NegativeSize", func(t *testing.T) {
		require.Equal(t, int64(0), blob.NewRangeByteSource(nil, -1).GetSizeBytes())
	})
}
