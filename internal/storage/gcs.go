package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"tvenergy/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage").WithFields(map[string]interface{}{"bucket": bucketName}),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// CreateDir is a no-op: GCS has no directories, prefixes appear with objects.
func (g *GCSClient) CreateDir(ctx context.Context, dirPath string) error {
	_, err := CleanPath(dirPath)
	return err
}

// StoreFile uploads fileData to the bucket
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	objectPath, err := CleanPath(filePath)
	if err != nil {
		return err
	}

	g.log.Debug("Storing object", map[string]interface{}{"object": objectPath, "bytes": len(fileData)})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(objectPath)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}
	return nil
}

// GetFile retrieves an object from the bucket
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	objectPath, err := CleanPath(filePath)
	if err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("failed to read file %s: %w", filePath, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return fileData, nil
}

// ListDir lists object names under dirPath. Without recursive, objects in
// nested prefixes are skipped.
func (g *GCSClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	prefix := ""
	if dirPath != "" && dirPath != "." {
		cleaned, err := CleanPath(dirPath)
		if err != nil {
			return nil, err
		}
		prefix = cleaned + "/"
	}

	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, query)
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		// synthetic prefix entries only carry Prefix
		if attrs.Name == "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		names = append(names, attrs.Name)
	}

	sort.Strings(names)
	return names, nil
}

// FileExists checks if an object exists in the bucket
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	objectPath, err := CleanPath(filePath)
	if err != nil {
		return false, err
	}
	_, err = g.client.Bucket(g.bucket).Object(objectPath).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", objectPath, err)
	}
	return true, nil
}
