package main

import (
	cloud_aws "github.com/buildbarn/bb-blobstream/pkg/cloud/aws"
	cloud_gcp "github.com/buildbarn/bb-blobstream/pkg/cloud/gcp"
	"github.com/buildbarn/bb-blobstream/pkg/global"
)

// ApplicationConfiguration is the top-level structure of the Jsonnet
// configuration file of bb_blobstream.
type ApplicationConfiguration struct {
	// Object whose contents should be streamed.
	Source SourceConfiguration `json:"source"`

	// Maximum size of the chunks in which the source is read. Zero
	// or negative values cause the source to be read at once.
	ChunkSizeBytes int64 `json:"chunkSizeBytes"`

	// Either "chunks" or "text". In chunks mode all consumers share
	// a single pass over the source. In text mode every consumer
	// reads the full source decoded as UTF-8 text.
	Mode string `json:"mode"`

	// Consumers of the data. At least one is required.
	Consumers []ConsumerConfiguration `json:"consumers"`

	// Name under which reads are reported in Prometheus metrics.
	// Defaults to "source".
	MetricsName string `json:"metricsName"`

	Global global.Configuration `json:"global"`
}

// SourceConfiguration selects the backend of the object. Exactly one
// field must be set.
type SourceConfiguration struct {
	Inline     *InlineSourceConfiguration     `json:"inline"`
	File       *FileSourceConfiguration       `json:"file"`
	HTTP       *HTTPSourceConfiguration       `json:"http"`
	S3         *S3SourceConfiguration         `json:"s3"`
	GCS        *GCSSourceConfiguration        `json:"gcs"`
	ByteStream *ByteStreamSourceConfiguration `json:"byteStream"`
}

// InlineSourceConfiguration is an object whose contents are part of
// the configuration file.
type InlineSourceConfiguration struct {
	Data string `json:"data"`
}

// FileSourceConfiguration is an object stored in a local file.
type FileSourceConfiguration struct {
	Path string `json:"path"`
}

// HTTPSourceConfiguration is an object served by a HTTP server that
// supports range requests.
type HTTPSourceConfiguration struct {
	URL string `json:"url"`
}

// S3SourceConfiguration is an object stored in an S3 bucket.
type S3SourceConfiguration struct {
	AWSSession cloud_aws.SessionConfiguration `json:"awsSession"`
	Bucket     string                         `json:"bucket"`
	Key        string                         `json:"key"`
}

// GCSSourceConfiguration is an object stored in a Google Cloud Storage
// bucket.
type GCSSourceConfiguration struct {
	Client cloud_gcp.ClientConfiguration `json:"client"`
	Bucket string                        `json:"bucket"`
	Object string                        `json:"object"`
}

// ByteStreamSourceConfiguration is a resource that is served by a
// gRPC server implementing the ByteStream protocol, such as a Content
// Addressable Storage.
type ByteStreamSourceConfiguration struct {
	Address      string `json:"address"`
	ResourceName string `json:"resourceName"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// ConsumerConfiguration selects what to do with the data. Exactly one
// field must be set.
type ConsumerConfiguration struct {
	Digest *DigestConsumerConfiguration `json:"digest"`
	File   *FileConsumerConfiguration   `json:"file"`
	Stdout *StdoutConsumerConfiguration `json:"stdout"`
}

// DigestConsumerConfiguration computes a digest of the data and
// prints it.
type DigestConsumerConfiguration struct {
	// Name of a REv2 digest function, such as "SHA256".
	Function string `json:"digestFunction"`
}

// FileConsumerConfiguration writes the data to a file.
type FileConsumerConfiguration struct {
	Path string `json:"path"`
	// Compress the file using Zstandard.
	Zstd bool `json:"zstd"`
}

// StdoutConsumerConfiguration writes the data to standard output.
type StdoutConsumerConfiguration struct{}
