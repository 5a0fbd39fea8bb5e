package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestClient(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewLocalStorageClient(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "exports")
	client, err := NewLocalStorageClient(base)
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	if client.BaseDir() != base {
		t.Errorf("BaseDir() = %q, want %q", client.BaseDir(), base)
	}
	if _, err := os.Stat(base); err != nil {
		t.Errorf("Base directory was not created: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() returned unexpected error: %v", err)
	}
}

func TestLocalStorageClient_StoreAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	content := []byte("ScreenType,AverageConsumption\nLCD,95.2\n")
	if err := client.StoreFile(ctx, "Ex5/bar.csv", content); err != nil {
		t.Fatalf("StoreFile() error = %v", err)
	}

	got, err := client.GetFile(ctx, "Ex5/bar.csv")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("GetFile() = %q, want %q", got, content)
	}

	exists, err := client.FileExists(ctx, "Ex5/bar.csv")
	if err != nil || !exists {
		t.Errorf("FileExists() = %v, %v; want true", exists, err)
	}
	exists, err = client.FileExists(ctx, "Ex5")
	if err != nil || exists {
		t.Errorf("FileExists(dir) = %v, %v; want false", exists, err)
	}
}

func TestLocalStorageClient_GetMissing(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetFile(context.Background(), "data/missing.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	exists, err := client.FileExists(context.Background(), "data/missing.csv")
	if err != nil || exists {
		t.Errorf("FileExists() = %v, %v; want false, nil", exists, err)
	}
}

func TestLocalStorageClient_RejectsTraversal(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "../escape.txt", []byte("x")); err == nil {
		t.Error("Expected error storing outside the base directory")
	}
	if _, err := client.GetFile(ctx, "data/../../etc/passwd"); err == nil {
		t.Error("Expected error reading outside the base directory")
	}
}

func TestLocalStorageClient_ListDir(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, p := range []string{"snap/index.html", "snap/charts/bar.svg", "snap/charts/line.svg", "other.txt"} {
		if err := client.StoreFile(ctx, p, []byte("x")); err != nil {
			t.Fatalf("StoreFile(%s) error = %v", p, err)
		}
	}
	if err := client.CreateDir(ctx, "snap/empty"); err != nil {
		t.Fatalf("CreateDir() error = %v", err)
	}

	tests := []struct {
		name      string
		dir       string
		recursive bool
		want      []string
	}{
		{"direct children only", "snap", false, []string{"snap/index.html"}},
		{"recursive", "snap", true, []string{"snap/charts/bar.svg", "snap/charts/line.svg", "snap/index.html"}},
		{"root", "", false, []string{"other.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.ListDir(ctx, tt.dir, tt.recursive)
			if err != nil {
				t.Fatalf("ListDir() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListDir() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := client.ListDir(ctx, "nope", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing dir, got %v", err)
	}
}
