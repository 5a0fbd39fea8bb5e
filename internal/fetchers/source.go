package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tvenergy/internal/storage"
)

// Source returns the raw bytes of a CSV resource addressed by a relative path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPSource fetches CSV files relative to a base URL
type HTTPSource struct {
	client  *resty.Client
	baseURL string
}

// NewHTTPSource creates an HTTP source. A zero timeout leaves requests
// bounded only by their context; retries of 0 makes a single attempt.
func NewHTTPSource(baseURL string, timeout time.Duration, retries int) *HTTPSource {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.SetRetryCount(retries)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetHeader("Accept", "text/csv, text/plain, */*")

	return NewHTTPSourceWithClient(client, baseURL)
}

// NewHTTPSourceWithClient wraps an existing resty client
func NewHTTPSourceWithClient(client *resty.Client, baseURL string) *HTTPSource {
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch GETs baseURL/path and returns the body of a 2xx response
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	cleaned, err := storage.CleanPath(path)
	if err != nil {
		return nil, err
	}
	url := s.baseURL + "/" + cleaned

	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}

// StorageSource reads CSV files through a storage client (local directory or
// GCS bucket)
type StorageSource struct {
	client storage.StorageClient
}

// NewStorageSource creates a source backed by client
func NewStorageSource(client storage.StorageClient) *StorageSource {
	return &StorageSource{client: client}
}

// Fetch reads path from storage
func (s *StorageSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	return s.client.GetFile(ctx, path)
}
