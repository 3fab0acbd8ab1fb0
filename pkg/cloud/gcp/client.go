package gcp

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/api/option"
)

// ClientConfiguration contains the options for creating a Google Cloud
// Storage client.
type ClientConfiguration struct {
	// Path of a service account key file. If left empty,
	// Application Default Credentials are used.
	CredentialsFile string `json:"credentialsFile"`
	// Access the storage service without any credentials, which
	// can be used to read objects in public buckets.
	WithoutAuthentication bool `json:"withoutAuthentication"`
}

// NewStorageClientFromConfiguration creates a Google Cloud Storage
// client based on options specified in a configuration structure.
func NewStorageClientFromConfiguration(ctx context.Context, configuration *ClientConfiguration) (StorageClient, error) {
	var clientOptions []option.ClientOption
	if path := configuration.CredentialsFile; path != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(path))
	}
	if configuration.WithoutAuthentication {
		clientOptions = append(clientOptions, option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, util.StatusWrap(util.StatusFromError(err), "Failed to create Google Cloud Storage client")
	}
	return NewWrappedStorageClient(client), nil
}
