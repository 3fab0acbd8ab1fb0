package blob

import (
	"bytes"
	"context"
	"io"
)

type byteSliceSource struct {
	data []byte
}

// NewByteSliceSource creates a ByteSource that is backed by a slice of
// bytes held in memory. The caller must not modify the slice after
// calling this function.
func NewByteSliceSource(data []byte) ByteSource {
	return byteSliceSource{data: data}
}

func (s byteSliceSource) GetSizeBytes() int64 {
	return int64(len(s.data))
}

func (s byteSliceSource) Slice(startBytes, endBytes int64) ByteSource {
	startBytes, endBytes = clampRange(int64(len(s.data)), startBytes, endBytes)
	return byteSliceSource{data: s.data[startBytes:endBytes:endBytes]}
}

func (s byteSliceSource) NewReader(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}
