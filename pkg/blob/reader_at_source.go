package blob

import (
	"context"
	"io"
	"os"

	"github.com/buildbarn/bb-blobstream/pkg/util"
)

// NewReaderAtSource creates a ByteSource that reads its data from an
// io.ReaderAt, such as an *os.File. The ReaderAt must remain valid for
// as long as the source is in use.
func NewReaderAtSource(r io.ReaderAt, sizeBytes int64) ByteSource {
	return NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			return io.NopCloser(io.NewSectionReader(r, offsetBytes, sizeBytes)), nil
		},
		sizeBytes)
}

// NewFileSource opens a file on disk and creates a ByteSource for it.
// The size of the source is the size of the file at the time it was
// opened. The file is closed by calling the returned io.Closer.
func NewFileSource(path string) (ByteSource, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, util.StatusWrapf(util.StatusFromError(err), "Failed to open file %#v", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, util.StatusWrapf(util.StatusFromError(err), "Failed to obtain attributes of file %#v", path)
	}
	return NewReaderAtSource(f, info.Size()), f, nil
}
