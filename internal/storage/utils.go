package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// GenerateExportFolderPath generates a consistent folder path for dashboard
// snapshots.
// Format: YYYY/MM/DD/TVEnergy-YYYY-MM-DD-HH-MM-SS
func GenerateExportFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/TVEnergy-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// CleanPath normalizes a client-relative path and rejects paths escaping the
// storage root.
func CleanPath(p string) (string, error) {
	slashed := strings.ReplaceAll(p, "\\", "/")
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("path %q escapes storage root", p)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if cleaned == "" {
		return "", fmt.Errorf("empty path %q", p)
	}
	return cleaned, nil
}

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".md":   "text/markdown",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
