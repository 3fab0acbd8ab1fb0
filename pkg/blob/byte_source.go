package blob

import (
	"context"
	"io"
	"strings"
)

// ByteSource is a handle to an immutable sequence of bytes of a known
// size, such as an in-memory buffer, a file or an object stored in a
// remote storage service. Byte sources may be sliced cheaply. Slicing
// never causes any data to be read or copied.
//
// Byte sources are safe for concurrent use.
type ByteSource interface {
	// Return the size of the data, in bytes.
	GetSizeBytes() int64

	// Return a view over the byte range [startBytes, endBytes) of
	// this source. Offsets are clamped to [0, GetSizeBytes()]. An
	// end offset below the start offset yields an empty view.
	Slice(startBytes, endBytes int64) ByteSource

	// Open the contents of the source for reading. Callers should
	// not use this function directly, but read the data through a
	// Reader instead.
	NewReader(ctx context.Context) (io.ReadCloser, error)
}

// clampRange translates the arguments of ByteSource.Slice() to a
// valid range within a source of a given size.
func clampRange(sizeBytes, startBytes, endBytes int64) (int64, int64) {
	startBytes = min(max(startBytes, 0), sizeBytes)
	endBytes = min(max(endBytes, startBytes), sizeBytes)
	return startBytes, endBytes
}

func newEmptyReader() io.ReadCloser {
	return io.NopCloser(strings.NewReader(""))
}
