package aws

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/buildbarn/bb-blobstream/pkg/util"
)

// SessionConfiguration contains the options that may be used to
// override the defaults of the AWS SDK, which are normally obtained
// from the environment.
type SessionConfiguration struct {
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	UsePathStyle    bool   `json:"usePathStyle"`
}

// NewConfigFromConfiguration creates a new AWS SDK config object based
// on options specified in a session configuration. The resulting
// config object can be used to access AWS services such as S3.
func NewConfigFromConfiguration(ctx context.Context, configuration *SessionConfiguration, httpClient *http.Client) (aws.Config, error) {
	loadOptions := []func(*config.LoadOptions) error{
		config.WithHTTPClient(httpClient),
	}
	if region := configuration.Region; region != "" {
		loadOptions = append(loadOptions, config.WithRegion(region))
	}
	if configuration.AccessKeyID != "" {
		loadOptions = append(loadOptions,
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					configuration.AccessKeyID,
					configuration.SecretAccessKey,
					"")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return aws.Config{}, util.StatusWrap(util.StatusFromError(err), "Failed to load AWS configuration")
	}
	return cfg, nil
}

// NewS3ClientFromConfiguration creates an S3 client, optionally
// pointing it to an S3 compatible service that is reachable at a
// custom endpoint.
func NewS3ClientFromConfiguration(ctx context.Context, configuration *SessionConfiguration, httpClient *http.Client) (S3Client, error) {
	cfg, err := NewConfigFromConfiguration(ctx, configuration, httpClient)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := configuration.Endpoint; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = configuration.UsePathStyle
	}), nil
}
