package blob

import (
	"context"
	"io"

	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/genproto/googleapis/bytestream"
)

type byteStreamReader struct {
	client    bytestream.ByteStream_ReadClient
	cancel    context.CancelFunc
	remaining []byte
}

func (r *byteStreamReader) Read(p []byte) (int, error) {
	for len(r.remaining) == 0 {
		response, err := r.client.Recv()
		if err == io.EOF {
			return 0, io.EOF
		} else if err != nil {
			return 0, util.StatusFromError(err)
		}
		r.remaining = response.Data
	}
	n := copy(p, r.remaining)
	r.remaining = r.remaining[n:]
	return n, nil
}

func (r *byteStreamReader) Close() error {
	r.cancel()
	for {
		if _, err := r.client.Recv(); err != nil {
			break
		}
	}
	return nil
}

// NewByteStreamSource creates a ByteSource for a resource that can be
// downloaded through the ByteStream protocol, such as a blob stored in
// a Content Addressable Storage. The size of the resource needs to be
// known up front, as the protocol provides no means of obtaining it.
// Reads of the source are translated to Read() calls with ReadOffset
// and ReadLimit set.
func NewByteStreamSource(client bytestream.ByteStreamClient, resourceName string, sizeBytes int64) ByteSource {
	return NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			ctxWithCancel, cancel := context.WithCancel(ctx)
			client, err := client.Read(ctxWithCancel, &bytestream.ReadRequest{
				ResourceName: resourceName,
				ReadOffset:   offsetBytes,
				ReadLimit:    sizeBytes,
			})
			if err != nil {
				cancel()
				return nil, util.StatusWrap(err, "ByteStream request failed")
			}
			return &byteStreamReader{
				client: client,
				cancel: cancel,
			}, nil
		},
		sizeBytes)
}
