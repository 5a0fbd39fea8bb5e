package mocks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tvenergy/internal/config"
	"tvenergy/internal/storage"
)

func TestMockServiceServesChartPaths(t *testing.T) {
	m := NewMockService()
	charts := config.DefaultChartsConfig()

	for _, name := range []string{"bar", "donut", "line", "scatter"} {
		t.Run(name, func(t *testing.T) {
			spec, _ := charts.Spec(name)
			body, err := m.Fetch(context.Background(), spec.DataPath)
			if err != nil {
				t.Fatalf("Fetch(%s) error = %v", spec.DataPath, err)
			}
			if !strings.Contains(string(body), "\n") {
				t.Errorf("Fetch(%s) returned no rows", spec.DataPath)
			}
		})
	}

	// the original scripts address the bar file with a leading ./
	if _, err := m.Fetch(context.Background(), "./"+charts.Bar.DataPath); err != nil {
		t.Errorf("Fetch with ./ prefix error = %v", err)
	}
}

func TestMockServiceMissingFile(t *testing.T) {
	_, err := NewMockService().Fetch(context.Background(), "data/unknown.csv")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestMockServiceListAndNarrative(t *testing.T) {
	m := NewMockService()

	files, err := m.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 4 {
		t.Errorf("expected 4 sample files, got %v", files)
	}

	text, err := m.LoadMockLLMResponse()
	if err != nil || !strings.Contains(text, "OLED") {
		t.Errorf("LoadMockLLMResponse() = %q, %v", text, err)
	}
}
