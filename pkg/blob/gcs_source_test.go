package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/buildbarn/bb-blobstream/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/mock/gomock"
)

func TestGCSSource(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	client := mock.NewMockStorageClient(ctrl)
	bucketHandle := mock.NewMockStorageBucketHandle(ctrl)
	client.EXPECT().Bucket("bucket").Return(bucketHandle).AnyTimes()

	t.Run("NotFound", func(t *testing.T) {
		objectHandle := mock.NewMockStorageObjectHandle(ctrl)
		bucketHandle.EXPECT().Object("missing").Return(objectHandle)
		objectHandle.EXPECT().Attrs(ctx).Return(nil, storage.ErrObjectNotExist)

		_, err := blob.NewGCSSource(ctx, client, "bucket", "missing")
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "Failed to obtain attributes of Google Cloud Storage object: storage: object doesn't exist"), err)
	})

	t.Run("Success", func(t *testing.T) {
		objectHandle := mock.NewMockStorageObjectHandle(ctrl)
		bucketHandle.EXPECT().Object("object").Return(objectHandle)
		objectHandle.EXPECT().Attrs(ctx).Return(&storage.ObjectAttrs{Size: 12}, nil)

		source, err := blob.NewGCSSource(ctx, client, "bucket", "object")
		require.NoError(t, err)
		require.Equal(t, int64(12), source.GetSizeBytes())

		objectHandle.EXPECT().NewRangeReader(gomock.Any(), int64(7), int64(5)).
			Return(io.NopCloser(strings.NewReader("world")), nil)
		require.Equal(t, "world", readSource(t, source.Slice(7, 12)))

		objectHandle.EXPECT().NewRangeReader(gomock.Any(), int64(0), int64(5)).
			Return(nil, status.Error(codes.PermissionDenied, "Access denied"))
		_, err = blob.NewDefaultReader().ReadAsBytes(ctx, source.Slice(0, 5))
		testutil.RequireEqualStatus(t, status.Error(codes.PermissionDenied, "Google Cloud Storage request failed: Access denied"), err)
	})
}
