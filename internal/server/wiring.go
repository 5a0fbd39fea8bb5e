package server

import (
	"context"
	"fmt"

	"tvenergy/internal/config"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/llm"
	"tvenergy/internal/logger"
	"tvenergy/internal/mocks"
	"tvenergy/internal/storage"
)

// NewSource returns the CSV source selected by cfg and a function releasing
// it. Mockup mode always serves the embedded samples.
func NewSource(ctx context.Context, cfg *config.Config) (fetchers.Source, func() error, error) {
	noop := func() error { return nil }

	if cfg.MockupMode {
		logger.Info("Mockup mode enabled - using embedded sample data")
		return mocks.NewMockService(), noop, nil
	}

	switch cfg.DataSource {
	case config.SourceHTTP:
		logger.Info("Loading chart data over HTTP", map[string]interface{}{"base_url": cfg.DataBaseURL})
		return fetchers.NewHTTPSource(cfg.DataBaseURL, cfg.FetchTimeout, cfg.FetchRetries), noop, nil

	case config.SourceGCS:
		client, err := storage.NewStorageClient(ctx, storage.DeploymentGCS, cfg.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loading chart data from GCS", map[string]interface{}{"bucket": cfg.GCSBucket})
		return fetchers.NewStorageSource(client), client.Close, nil

	case config.SourceLocal:
		client, err := storage.NewStorageClient(ctx, storage.DeploymentLocal, cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loading chart data from local directory", map[string]interface{}{"dir": cfg.DataDir})
		return fetchers.NewStorageSource(client), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported DATA_SOURCE %q", cfg.DataSource)
}

// NewExportStorage returns where snapshots are written: the GCS bucket when
// one is configured, EXPORT_DIR otherwise
func NewExportStorage(ctx context.Context, cfg *config.Config) (storage.StorageClient, error) {
	if cfg.GCSBucket != "" {
		logger.Info("Snapshots will be saved to GCS bucket", map[string]interface{}{"bucket": cfg.GCSBucket})
		return storage.NewStorageClient(ctx, storage.DeploymentGCS, cfg.GCSBucket)
	}
	logger.Info("Snapshots will be saved locally", map[string]interface{}{"dir": cfg.ExportDir})
	return storage.NewStorageClient(ctx, storage.DeploymentLocal, cfg.ExportDir)
}

// NewNarrator returns the narrative writer for cfg, or nil when narratives
// are disabled
func NewNarrator(cfg *config.Config) (llm.Narrator, error) {
	if cfg.MockupMode {
		text, err := mocks.NewMockService().LoadMockLLMResponse()
		if err != nil {
			return nil, fmt.Errorf("mock LLM response loading failed: %w", err)
		}
		return llm.StaticNarrator{Text: text}, nil
	}
	if !cfg.NarrativesEnabled() {
		logger.Info("OPENAI_API_KEY not set - narratives disabled")
		return nil, nil
	}
	return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
}
