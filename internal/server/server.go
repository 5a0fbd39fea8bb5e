package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"tvenergy/internal/charts"
	"tvenergy/internal/config"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/llm"
	"tvenergy/internal/logger"
	"tvenergy/internal/reports"
	"tvenergy/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config    *config.Config
	Fetcher   *fetchers.DataFetcher
	Charts    *charts.ChartGenerator
	Dashboard *reports.DashboardService
	Exporter  *reports.Exporter
	Storage   storage.StorageClient

	closers     []func() error
	exportMutex sync.Mutex
	log         *logger.Logger
}

// NewServer creates a server with the data source, narrator and export
// storage selected by cfg
func NewServer(ctx context.Context, cfg *config.Config, chartsCfg config.ChartsConfig) (*Server, error) {
	source, closeSource, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := NewExportStorage(ctx, cfg)
	if err != nil {
		closeSource()
		return nil, err
	}

	narrator, err := NewNarrator(cfg)
	if err != nil {
		closeSource()
		store.Close()
		return nil, err
	}

	s := New(cfg, fetchers.NewDataFetcher(source, chartsCfg), chartsCfg, narrator, store)
	s.closers = append(s.closers, closeSource)
	return s, nil
}

// New assembles a server from ready components
func New(cfg *config.Config, fetcher *fetchers.DataFetcher, chartsCfg config.ChartsConfig, narrator llm.Narrator, store storage.StorageClient) *Server {
	chartGen := charts.NewChartGenerator(fetcher, chartsCfg)
	dashboard := reports.NewDashboardService(chartGen, fetcher, narrator)
	return &Server{
		Config:    cfg,
		Fetcher:   fetcher,
		Charts:    chartGen,
		Dashboard: dashboard,
		Exporter:  reports.NewExporter(dashboard, store),
		Storage:   store,
		log:       logger.Component("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/charts/line/focus", s.HandleLineFocus)
	mux.HandleFunc("/charts/", s.HandleChart)
	mux.HandleFunc("/echarts", s.HandleECharts)
	mux.HandleFunc("/export", s.HandleExport)
	mux.HandleFunc("/exports", s.HandleListExports)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/static/", s.HandleStatic)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return firstErr
}
