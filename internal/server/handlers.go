package server

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"tvenergy/internal/config"
)

// HandleRoot serves the dashboard page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	width, err := s.width(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := s.Dashboard.Page(r.Context(), width, "/static/")
	if err != nil {
		s.log.Error("Dashboard render failed", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// HandleStatic serves the dashboard stylesheet and runtime script
func (s *Server) HandleStatic(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/static/")
	assets, err := s.Dashboard.Assets()
	if err != nil {
		writeError(w, err)
		return
	}
	content, ok := assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType(name))
	w.Write(content)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"version":     config.GetVersion(),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.Config.Environment,
		"data_source": s.Config.DataSource,
		"mockup_mode": s.Config.MockupMode,
	})
}

// HandleECharts serves the ECharts rendition of the four charts
func (s *Server) HandleECharts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var buf bytes.Buffer
	if err := s.Charts.RenderECharts(r.Context(), &buf); err != nil {
		s.log.Error("ECharts render failed", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleExport writes a dashboard snapshot into storage. Only one export
// runs at a time.
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	if !s.exportMutex.TryLock() {
		s.log.Warn("Export already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "Export already in progress",
			"message": "Another export is currently running. Please wait for it to complete before starting a new one.",
			"status":  "conflict",
		})
		return
	}
	defer s.exportMutex.Unlock()

	width, err := s.width(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.log.Info("Starting export", map[string]interface{}{"width": width})
	result, err := s.Exporter.Export(r.Context(), width)
	if err != nil {
		s.log.Error("Export failed", err)
		writeError(w, err)
		return
	}

	s.log.Info("Export completed", map[string]interface{}{
		"folder":   result.FolderPath,
		"files":    len(result.Files),
		"duration": result.Duration,
	})
	writeJSON(w, http.StatusOK, result)
}
