package blob

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	cloud_gcp "github.com/buildbarn/bb-blobstream/pkg/cloud/gcp"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func convertGCSError(err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return status.Error(codes.NotFound, err.Error())
	}
	return util.StatusFromError(err)
}

// NewGCSSource creates a ByteSource for an object stored in a Google
// Cloud Storage bucket. The size of the object is obtained from its
// attributes. Reads of the source are translated to range reads.
func NewGCSSource(ctx context.Context, client cloud_gcp.StorageClient, bucket, object string) (ByteSource, error) {
	objectHandle := client.Bucket(bucket).Object(object)
	attrs, err := objectHandle.Attrs(ctx)
	if err != nil {
		return nil, util.StatusWrap(convertGCSError(err), "Failed to obtain attributes of Google Cloud Storage object")
	}
	return NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			r, err := objectHandle.NewRangeReader(ctx, offsetBytes, sizeBytes)
			if err != nil {
				return nil, util.StatusWrap(convertGCSError(err), "Google Cloud Storage request failed")
			}
			return r, nil
		},
		attrs.Size), nil
}
