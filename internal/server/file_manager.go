package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tvenergy/internal/storage"
)

func contentType(name string) string {
	ct := storage.GetContentType(name)
	if strings.HasPrefix(ct, "text/") || ct == "application/javascript" {
		ct += "; charset=utf-8"
	}
	return ct
}

// HandleFileProxy serves snapshot files from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	// e.g. /files/2025/06/02/TVEnergy-2025-06-02-14-05-09/index.html
	filePath, err := storage.CleanPath(strings.TrimPrefix(r.URL.Path, "/files/"))
	if err != nil {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		s.log.Error("Failed to get file from storage", err, map[string]interface{}{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(filePath))
	w.Write(fileData)
}

// HandleListExports lists recent snapshots
func (s *Server) HandleListExports(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	// Get limit from query parameter (default 10)
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	folders, err := s.Exporter.ListExports(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list exports", err)
		writeError(w, err)
		return
	}

	exports := make([]map[string]string, 0, len(folders))
	for _, f := range folders {
		exports = append(exports, map[string]string{
			"folder":    f,
			"index_url": "/files/" + f + "/index.html",
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exports":   exports,
		"count":     len(exports),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
