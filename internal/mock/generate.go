package mock

//go:generate mockgen -destination aliases.go -package mock github.com/buildbarn/bb-blobstream/internal/mock/aliases ReadCloser,Writer
//go:generate mockgen -destination blob.go -package mock github.com/buildbarn/bb-blobstream/pkg/blob ByteSource,Reader
//go:generate mockgen -destination chunkstream.go -package mock github.com/buildbarn/bb-blobstream/pkg/chunkstream ChunkReader,Observer
//go:generate mockgen -destination clock.go -package mock github.com/buildbarn/bb-blobstream/pkg/clock Clock
//go:generate mockgen -destination cloud_aws.go -package mock github.com/buildbarn/bb-blobstream/pkg/cloud/aws S3Client
//go:generate mockgen -destination cloud_gcp.go -package mock github.com/buildbarn/bb-blobstream/pkg/cloud/gcp StorageBucketHandle,StorageClient,StorageObjectHandle
//go:generate mockgen -destination util.go -package mock github.com/buildbarn/bb-blobstream/pkg/util ErrorLogger
