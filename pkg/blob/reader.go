package blob

import (
	"context"
	"io"

	"github.com/buildbarn/bb-blobstream/pkg/util"

	"golang.org/x/text/encoding/unicode"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reader is the primitive for reading the full contents of a
// ByteSource. Every call performs exactly one read of the source it is
// given. Callers that want to read data in chunks should slice the
// source first.
//
// Errors are returned in the form of gRPC statuses.
type Reader interface {
	// Read the contents of the source into a newly allocated
	// slice of bytes.
	ReadAsBytes(ctx context.Context, source ByteSource) ([]byte, error)
	// Read the contents of the source, decoding it as UTF-8. A
	// leading byte order mark is stripped, and invalid byte
	// sequences are replaced by U+FFFD.
	ReadAsText(ctx context.Context, source ByteSource) (string, error)
}

type defaultReader struct{}

// NewDefaultReader creates a Reader that opens the source, reads all
// of its data and validates that the amount of data returned matches
// the size of the source.
func NewDefaultReader() Reader {
	return defaultReader{}
}

func (defaultReader) ReadAsBytes(ctx context.Context, source ByteSource) ([]byte, error) {
	sizeBytes := source.GetSizeBytes()
	r, err := source.NewReader(ctx)
	if err != nil {
		return nil, util.StatusFromError(err)
	}
	defer r.Close()

	data := make([]byte, sizeBytes)
	n, err := io.ReadFull(r, data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, status.Errorf(codes.Internal, "Byte source is %d bytes in size, while only %d bytes could be read", sizeBytes, n)
	} else if err != nil {
		return nil, util.StatusFromError(err)
	}

	// Reject sources that yield more data than announced.
	var extra [1]byte
	if n, err := r.Read(extra[:]); n > 0 {
		return nil, status.Errorf(codes.Internal, "Byte source is %d bytes in size, while more than %d bytes were read", sizeBytes, sizeBytes)
	} else if err != nil && err != io.EOF {
		return nil, util.StatusFromError(err)
	}
	return data, nil
}

func (r defaultReader) ReadAsText(ctx context.Context, source ByteSource) (string, error) {
	data, err := r.ReadAsBytes(ctx, source)
	if err != nil {
		return "", err
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", util.StatusWrapWithCode(err, codes.Internal, "Failed to decode text")
	}
	return string(text), nil
}
