package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MOCKUP_MODE", "true")
	t.Setenv("EXPORT_DIR", t.TempDir())
	t.Setenv("DATA_SOURCE", "local")
	t.Setenv("LOG_LEVEL", "error")
	for _, key := range []string{"GCS_BUCKET", "CHARTS_CONFIG", "OPENAI_API_KEY", "PORT", "DEFAULT_WIDTH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestSetupMockupMode(t *testing.T) {
	setTestEnv(t)

	cfg, srv, err := setup(context.Background())
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	defer srv.Close()

	if !cfg.MockupMode {
		t.Fatal("expected mockup mode")
	}

	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	tests := []struct {
		path     string
		contains string
	}{
		{"/health", "healthy"},
		{"/", "TV Energy Dashboard"},
		{"/charts/bar.svg?width=700", "<svg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			buf := new(strings.Builder)
			if _, err := io.Copy(buf, resp.Body); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestSetupInvalidConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DATA_SOURCE", "ftp")

	if _, _, err := setup(context.Background()); err == nil {
		t.Error("expected configuration error")
	}
}
