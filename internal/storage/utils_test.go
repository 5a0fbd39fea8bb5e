package storage

import (
	"testing"
	"time"
)

func TestGenerateExportFolderPath(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			timestamp: time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC),
			expected:  "2025/09/17/TVEnergy-2025-09-17-14-30-45",
		},
		{
			name:      "new year date",
			timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected:  "2025/01/01/TVEnergy-2025-01-01-00-00-00",
		},
		{
			name:      "leap year date",
			timestamp: time.Date(2024, 2, 29, 12, 15, 30, 0, time.UTC),
			expected:  "2024/02/29/TVEnergy-2024-02-29-12-15-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateExportFolderPath(tt.timestamp); got != tt.expected {
				t.Errorf("GenerateExportFolderPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"data/Ex5_TV_energy.csv", "data/Ex5_TV_energy.csv", false},
		{"/Ex5//spot.csv", "Ex5/spot.csv", false},
		{"./data/./a.csv", "data/a.csv", false},
		{`Ex5\spot.csv`, "Ex5/spot.csv", false},
		{"../secret", "", true},
		{"data/../../x", "", true},
		{"", "", true},
		{"/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CleanPath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"index.html", "text/html"},
		{"bar.svg", "image/svg+xml"},
		{"bar.PNG", "image/png"},
		{"datasets.json", "application/json"},
		{"runtime.js", "application/javascript"},
		{"spot.csv", "text/csv"},
		{"notes.md", "text/markdown"},
		{"blob.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := GetContentType(tt.filename); got != tt.expected {
				t.Errorf("GetContentType(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}
