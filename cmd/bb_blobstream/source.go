package main

import (
	"context"
	"io"
	"net/http"

	"github.com/buildbarn/bb-blobstream/pkg/blob"
	cloud_aws "github.com/buildbarn/bb-blobstream/pkg/cloud/aws"
	cloud_gcp "github.com/buildbarn/bb-blobstream/pkg/cloud/gcp"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/genproto/googleapis/bytestream"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// newByteSourceFromConfiguration creates the ByteSource of the object
// to stream. The returned io.Closer releases resources held by the
// source, such as open files and network connections.
func newByteSourceFromConfiguration(ctx context.Context, configuration *SourceConfiguration, httpClient *http.Client) (blob.ByteSource, io.Closer, error) {
	switch {
	case configuration.Inline != nil:
		return blob.NewByteSliceSource([]byte(configuration.Inline.Data)), nopCloser{}, nil
	case configuration.File != nil:
		return blob.NewFileSource(configuration.File.Path)
	case configuration.HTTP != nil:
		source, err := blob.NewHTTPSource(ctx, httpClient, configuration.HTTP.URL)
		if err != nil {
			return nil, nil, util.StatusWrapf(err, "Failed to open %#v", configuration.HTTP.URL)
		}
		return source, nopCloser{}, nil
	case configuration.S3 != nil:
		c := configuration.S3
		client, err := cloud_aws.NewS3ClientFromConfiguration(ctx, &c.AWSSession, httpClient)
		if err != nil {
			return nil, nil, err
		}
		source, err := blob.NewS3Source(ctx, client, c.Bucket, c.Key)
		if err != nil {
			return nil, nil, util.StatusWrapf(err, "Failed to open S3 object %#v in bucket %#v", c.Key, c.Bucket)
		}
		return source, nopCloser{}, nil
	case configuration.GCS != nil:
		c := configuration.GCS
		client, err := cloud_gcp.NewStorageClientFromConfiguration(ctx, &c.Client)
		if err != nil {
			return nil, nil, err
		}
		source, err := blob.NewGCSSource(ctx, client, c.Bucket, c.Object)
		if err != nil {
			return nil, nil, util.StatusWrapf(err, "Failed to open Google Cloud Storage object %#v in bucket %#v", c.Object, c.Bucket)
		}
		return source, nopCloser{}, nil
	case configuration.ByteStream != nil:
		c := configuration.ByteStream
		if c.SizeBytes < 0 {
			return nil, nil, status.Errorf(codes.InvalidArgument, "Invalid size of ByteStream resource: %d bytes", c.SizeBytes)
		}
		conn, err := grpc.NewClient(c.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, util.StatusWrapf(err, "Failed to create gRPC client for %#v", c.Address)
		}
		return blob.NewByteStreamSource(bytestream.NewByteStreamClient(conn), c.ResourceName, c.SizeBytes), conn, nil
	default:
		return nil, nil, status.Error(codes.InvalidArgument, "No source configured")
	}
}
