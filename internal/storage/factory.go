package storage

import (
	"context"
	"fmt"
)

// DeploymentMode selects the storage backend
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewStorageClient creates a storage client for mode. Local clients are
// rooted at location (a directory), GCS clients at location (a bucket).
func NewStorageClient(ctx context.Context, mode DeploymentMode, location string) (StorageClient, error) {
	switch mode {
	case DeploymentLocal:
		localClient, err := NewLocalStorageClient(location)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", mode)
	}
}
