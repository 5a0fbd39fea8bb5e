package reports

import (
	"context"
	"fmt"
	"time"

	"tvenergy/internal/storage"
)

// ExportResult describes a stored snapshot
type ExportResult struct {
	Status      string            `json:"status"`
	FolderPath  string            `json:"folder_path"`
	IndexURL    string            `json:"index_url"`
	Files       []string          `json:"files"`
	GeneratedAt string            `json:"generated_at"`
	Duration    string            `json:"duration"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// Exporter writes dashboard snapshots into storage
type Exporter struct {
	files        *FileGenerator
	orchestrator *StorageOrchestrator
	now          func() time.Time
}

// NewExporter creates an exporter for the dashboard into client
func NewExporter(dashboard *DashboardService, client storage.StorageClient) *Exporter {
	return &Exporter{
		files:        NewFileGenerator(dashboard),
		orchestrator: NewStorageOrchestrator(client),
		now:          time.Now,
	}
}

// Export renders a snapshot at width and stores it
func (e *Exporter) Export(ctx context.Context, width float64) (*ExportResult, error) {
	start := e.now()

	files, err := e.files.GenerateAllFiles(ctx, width, start.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to generate files: %w", err)
	}

	stored, err := e.orchestrator.StoreAllFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to store files: %w", err)
	}

	return &ExportResult{
		Status:      "success",
		FolderPath:  files.FolderPath,
		IndexURL:    "/files/" + files.FolderPath + "/" + IndexFile,
		Files:       stored,
		GeneratedAt: files.GeneratedAt.Format(time.RFC3339),
		Duration:    time.Since(start).String(),
		Errors:      files.Errors,
	}, nil
}

// ListExports returns the newest snapshot folders
func (e *Exporter) ListExports(ctx context.Context, limit int) ([]string, error) {
	return e.orchestrator.ListExports(ctx, limit)
}
