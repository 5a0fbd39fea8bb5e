package mocks

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"tvenergy/internal/storage"
)

//go:embed data
var mockFS embed.FS

// MockService serves the built-in sample datasets for mockup mode
type MockService struct {
	files fs.FS
}

// NewMockService creates a new mock service over the embedded samples
func NewMockService() *MockService {
	sub, err := fs.Sub(mockFS, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded mock data missing: %v", err))
	}
	return &MockService{files: sub}
}

// Fetch returns the sample file at path, matching the chart data paths
func (m *MockService) Fetch(ctx context.Context, filePath string) ([]byte, error) {
	cleaned, err := storage.CleanPath(filePath)
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(m.files, cleaned)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("mock file %s: %w", cleaned, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read mock file %s: %w", cleaned, err)
	}
	return content, nil
}

// ListFiles returns every embedded CSV path
func (m *MockService) ListFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(m.files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".csv" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list mock files: %w", err)
	}
	return files, nil
}

// LoadMockLLMResponse loads the canned narrative used instead of OpenAI
func (m *MockService) LoadMockLLMResponse() (string, error) {
	content, err := fs.ReadFile(m.files, "llm_response.md")
	if err != nil {
		return "", fmt.Errorf("failed to read mock LLM response: %w", err)
	}
	return string(content), nil
}
