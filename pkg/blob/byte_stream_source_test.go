package blob_test

import (
	"context"
	"net"
	"testing"

	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/buildbarn/bb-blobstream/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/genproto/googleapis/bytestream"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeByteStreamServer serves a single resource, returning the
// requested range in responses of at most three bytes.
type fakeByteStreamServer struct {
	bytestream.UnimplementedByteStreamServer

	resourceName string
	data         []byte
	requests     []*bytestream.ReadRequest
}

func (s *fakeByteStreamServer) Read(request *bytestream.ReadRequest, out bytestream.ByteStream_ReadServer) error {
	s.requests = append(s.requests, request)
	if request.ResourceName != s.resourceName {
		return status.Error(codes.NotFound, "Resource not found")
	}
	data := s.data[request.ReadOffset : request.ReadOffset+request.ReadLimit]
	for len(data) > 0 {
		n := min(len(data), 3)
		if err := out.Send(&bytestream.ReadResponse{Data: data[:n]}); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func TestByteStreamSource(t *testing.T) {
	ctx := context.Background()

	l := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	fakeServer := &fakeByteStreamServer{
		resourceName: "blobs/64ec88ca00b268e5ba1a35678a1b5316d212f4f366b2477232534a8aeca37f3c/12",
		data:         []byte("Hello, world"),
	}
	bytestream.RegisterByteStreamServer(server, fakeServer)
	go server.Serve(l)
	defer server.Stop()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return l.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := bytestream.NewByteStreamClient(conn)

	t.Run("Success", func(t *testing.T) {
		source := blob.NewByteStreamSource(client, fakeServer.resourceName, 12)
		require.Equal(t, "Hello, world", readSource(t, source))
		require.Equal(t, "lo, wo", readSource(t, source.Slice(3, 9)))

		require.Len(t, fakeServer.requests, 2)
		require.Equal(t, int64(3), fakeServer.requests[1].ReadOffset)
		require.Equal(t, int64(6), fakeServer.requests[1].ReadLimit)
	})

	t.Run("NotFound", func(t *testing.T) {
		source := blob.NewByteStreamSource(client, "blobs/nonexistent/5", 5)
		_, err := blob.NewDefaultReader().ReadAsBytes(ctx, source)
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "Resource not found"), err)
	})
}
