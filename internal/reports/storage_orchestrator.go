package reports

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"tvenergy/internal/logger"
	"tvenergy/internal/storage"
)

// StorageOrchestrator handles storing generated snapshot files
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: client,
		log:     logger.Component("storage"),
	}
}

// StoreAllFiles writes every generated file under files.FolderPath and
// returns the stored paths. index.html is written last, so a folder with an
// index is always complete.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) ([]string, error) {
	if err := so.storage.CreateDir(ctx, files.FolderPath); err != nil {
		return nil, fmt.Errorf("failed to create snapshot folder: %w", err)
	}

	var stored []string
	store := func(name string, data []byte) error {
		p := path.Join(files.FolderPath, name)
		if err := so.storage.StoreFile(ctx, p, data); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
		stored = append(stored, p)
		return nil
	}

	for _, group := range []map[string][]byte{files.JSONFiles, files.SVGFiles, files.ImageFiles, files.AssetFiles} {
		for _, name := range sortedNames(group) {
			if err := store(name, group[name]); err != nil {
				return stored, err
			}
		}
	}
	if err := store(IndexFile, []byte(files.HTMLContent)); err != nil {
		return stored, err
	}

	so.log.Info("Snapshot stored", map[string]interface{}{
		"folder": files.FolderPath,
		"files":  len(stored),
	})
	return stored, nil
}

// ListExports returns the folders of complete snapshots, newest first, at
// most limit of them (all when limit <= 0).
func (so *StorageOrchestrator) ListExports(ctx context.Context, limit int) ([]string, error) {
	paths, err := so.storage.ListDir(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var folders []string
	for _, p := range paths {
		if path.Base(p) == IndexFile && strings.Contains(p, "/TVEnergy-") {
			folders = append(folders, path.Dir(p))
		}
	}
	// folder names embed the timestamp, so lexical order is chronological
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	if limit > 0 && len(folders) > limit {
		folders = folders[:limit]
	}
	return folders, nil
}

func sortedNames(m map[string][]byte) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
