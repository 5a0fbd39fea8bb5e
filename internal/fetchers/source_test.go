package fetchers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tvenergy/internal/storage"
)

func TestHTTPSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/datasets/Ex5/Ex5_ARE_Spot_Prices.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte("Year,NSW\n2001,35.1\n"))
		case "/datasets/broken.csv":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name     string
		baseURL  string
		path     string
		wantErr  bool
		wantBody string
	}{
		{"success", server.URL + "/datasets", "Ex5/Ex5_ARE_Spot_Prices.csv", false, "Year,NSW"},
		{"trailing slash and dot path", server.URL + "/datasets/", "./Ex5/Ex5_ARE_Spot_Prices.csv", false, "Year,NSW"},
		{"not found", server.URL + "/datasets", "data/missing.csv", true, ""},
		{"server error", server.URL + "/datasets", "broken.csv", true, ""},
		{"path traversal", server.URL + "/datasets", "../secret.csv", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewHTTPSource(tt.baseURL, 5*time.Second, 0)
			body, err := src.Fetch(context.Background(), tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.HasPrefix(string(body), tt.wantBody) {
				t.Errorf("Fetch() body = %q, want prefix %q", body, tt.wantBody)
			}
		})
	}
}

func TestHTTPSourceHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := NewHTTPSource(server.URL, 0, 0)
	if _, err := src.Fetch(ctx, "slow.csv"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestStorageSourceFetch(t *testing.T) {
	client, err := storage.NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := client.StoreFile(ctx, "data/Ex5_TV_energy.csv", []byte("brand\nSony\n")); err != nil {
		t.Fatal(err)
	}

	src := NewStorageSource(client)
	body, err := src.Fetch(ctx, "data/Ex5_TV_energy.csv")
	if err != nil || string(body) != "brand\nSony\n" {
		t.Errorf("Fetch() = %q, %v", body, err)
	}

	if _, err := src.Fetch(ctx, "data/none.csv"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}
