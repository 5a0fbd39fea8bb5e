package server

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"tvenergy/internal/fetchers"
)

// HandleChart serves /charts/{name}.svg and /charts/{name}.png
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	file := strings.TrimPrefix(r.URL.Path, "/charts/")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	if strings.Contains(name, "/") || (ext != ".svg" && ext != ".png") {
		http.NotFound(w, r)
		return
	}

	width, err := s.width(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if ext == ".svg" {
		s.serveSVG(w, r, name, width)
		return
	}
	s.servePNG(w, r, name, width)
}

func (s *Server) serveSVG(w http.ResponseWriter, r *http.Request, name string, width float64) {
	surface, err := s.Charts.Render(r.Context(), name, width)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.log.Error("Chart render failed", err, map[string]interface{}{"chart": name, "width": width})
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(surface.SVG()))
}

func (s *Server) servePNG(w http.ResponseWriter, r *http.Request, name string, width float64) {
	var buf bytes.Buffer
	if err := s.Charts.RenderPNG(r.Context(), name, int(width), &buf); err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.log.Warn("PNG preview failed", map[string]interface{}{"chart": name, "error": err.Error()})
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// HandleLineFocus resolves a pointer x position over the line chart plot
// area to the nearest sampled year
func (s *Server) HandleLineFocus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	if r.URL.Query().Get("x") == "" {
		writeError(w, fmt.Errorf("%w: x is required", errBadRequest))
		return
	}
	x, err := floatParam(r, "x", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	width, err := s.width(r)
	if err != nil {
		writeError(w, err)
		return
	}

	focus, err := s.Charts.Focus(r.Context(), width)
	if err != nil {
		writeError(w, err)
		return
	}
	point, ok := focus.Lookup(x)
	if !ok {
		writeError(w, fmt.Errorf("%w: line chart has no samples", fetchers.ErrEmptyDataset))
		return
	}
	writeJSON(w, http.StatusOK, point)
}
