package blob

import (
	"context"
	"io"
)

// RangeOpener opens a reader for the byte range [offsetBytes,
// offsetBytes+sizeBytes) of an object. It is called with sizeBytes
// greater than zero.
type RangeOpener func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error)

type rangeByteSource struct {
	opener      RangeOpener
	offsetBytes int64
	sizeBytes   int64
}

// NewRangeByteSource creates a ByteSource for an object of a known
// size that is stored in a backend that supports reading arbitrary
// byte ranges, such as a file, a HTTP server or a cloud storage
// bucket. Slices of the source are translated to range requests
// against the backend.
func NewRangeByteSource(opener RangeOpener, sizeBytes int64) ByteSource {
	return &rangeByteSource{
		opener:    opener,
		sizeBytes: max(sizeBytes, 0),
	}
}

func (s *rangeByteSource) GetSizeBytes() int64 {
	return s.sizeBytes
}

func (s *rangeByteSource) Slice(startBytes, endBytes int64) ByteSource {
	startBytes, endBytes = clampRange(s.sizeBytes, startBytes, endBytes)
	return &rangeByteSource{
		opener:      s.opener,
		offsetBytes: s.offsetBytes + startBytes,
		sizeBytes:   endBytes - startBytes,
	}
}

func (s *rangeByteSource) NewReader(ctx context.Context) (io.ReadCloser, error) {
	if s.sizeBytes == 0 {
		// Don't contact the backend for empty ranges. Range
		// requests of zero bytes cannot be expressed in HTTP.
		return newEmptyReader(), nil
	}
	return s.opener(ctx, s.offsetBytes, s.sizeBytes)
}
