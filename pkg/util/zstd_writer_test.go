package util_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/util"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"go.uber.org/mock/gomock"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func TestZstdWriteCloser(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("RoundTrip", func(t *testing.T) {
		var compressed bytes.Buffer
		w, err := util.NewZstdWriteCloser(nopWriteCloser{Writer: &compressed})
		require.NoError(t, err)
		_, err = w.Write([]byte("Hello, "))
		require.NoError(t, err)
		_, err = w.Write([]byte("world"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		decoder, err := zstd.NewReader(&compressed)
		require.NoError(t, err)
		defer decoder.Close()
		data, err := io.ReadAll(decoder)
		require.NoError(t, err)
		require.Equal(t, []byte("Hello, world"), data)
	})

	t.Run("WriteFailure", func(t *testing.T) {
		// Errors writing the compressed data should be
		// reported when the encoder is flushed.
		underlyingWriter := mock.NewMockWriter(ctrl)
		underlyingWriter.EXPECT().Write(gomock.Any()).Return(0, io.ErrShortWrite).AnyTimes()
		w, err := util.NewZstdWriteCloser(nopWriteCloser{Writer: underlyingWriter})
		require.NoError(t, err)
		w.Write([]byte("Hello"))
		require.Error(t, w.Close())
	})
}
