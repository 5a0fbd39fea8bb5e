package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tvenergy/internal/config"
	"tvenergy/internal/logger"
	"tvenergy/internal/server"
)

// setup loads configuration and builds the server
func setup(ctx context.Context) (*config.Config, *server.Server, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	chartsCfg, err := config.LoadChartsConfig(cfg.ChartsConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load chart configuration: %w", err)
	}

	srv, err := server.NewServer(ctx, cfg, chartsCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}
	return cfg, srv, nil
}

func main() {
	ctx := context.Background()

	cfg, srv, err := setup(ctx)
	if err != nil {
		logger.Fatal("Startup failed", err)
	}
	defer srv.Close()

	logger.Info("Starting TV Energy Dashboard", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"data_source": cfg.DataSource,
		"mockup_mode": cfg.MockupMode,
		"version":     config.GetVersion(),
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // exports render every chart twice
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
