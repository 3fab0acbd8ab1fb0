package util

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewZstdWriteCloser creates a new io.WriteCloser that wraps an
// underlying writer and compresses the data using Zstandard. The
// writer will flush the encoder and close the underlying writer when
// it is closed.
func NewZstdWriteCloser(underlyingWriter io.WriteCloser, options ...zstd.EOption) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(underlyingWriter, options...)
	if err != nil {
		return nil, err
	}
	return &zstdWriteCloser{Encoder: encoder, underlyingWriter: underlyingWriter}, nil
}

type zstdWriteCloser struct {
	*zstd.Encoder

	underlyingWriter io.WriteCloser
}

func (w *zstdWriteCloser) Close() error {
	if err := w.Encoder.Close(); err != nil {
		w.underlyingWriter.Close()
		return err
	}
	return w.underlyingWriter.Close()
}
