package blob

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	cloud_aws "github.com/buildbarn/bb-blobstream/pkg/cloud/aws"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func convertS3Error(err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return util.StatusFromError(err)
}

// NewS3Source creates a ByteSource for an object stored in an S3
// bucket. The size of the object is obtained through HeadObject().
// Reads of the source are translated to GetObject() calls with a Range
// header.
func NewS3Source(ctx context.Context, client cloud_aws.S3Client, bucket, key string) (ByteSource, error) {
	headObjectOutput, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, util.StatusWrap(convertS3Error(err), "Failed to obtain attributes of S3 object")
	}
	return NewRangeByteSource(
		func(ctx context.Context, offsetBytes, sizeBytes int64) (io.ReadCloser, error) {
			getObjectOutput, err := client.GetObject(ctx, &s3.GetObjectInput{
				Bucket:  aws.String(bucket),
				Key:     aws.String(key),
				Range:   aws.String(getHTTPRangeHeader(offsetBytes, sizeBytes)),
				IfMatch: headObjectOutput.ETag,
			})
			if err != nil {
				return nil, util.StatusWrap(convertS3Error(err), "S3 request failed")
			}
			return getObjectOutput.Body, nil
		},
		aws.ToInt64(headObjectOutput.ContentLength)), nil
}
