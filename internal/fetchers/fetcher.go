package fetchers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tvenergy/internal/config"
	"tvenergy/internal/logger"
	"tvenergy/internal/models"
)

// DataFetcher runs load, normalize and validate for each chart
type DataFetcher struct {
	source     Source
	charts     config.ChartsConfig
	normalizer *DataNormalizer
	log        *logger.Logger
}

// NewDataFetcher creates a fetcher reading chart CSV files from source
func NewDataFetcher(source Source, charts config.ChartsConfig) *DataFetcher {
	return &DataFetcher{
		source:     source,
		charts:     charts,
		normalizer: NewDataNormalizer(charts),
		log:        logger.Component("fetchers"),
	}
}

// Load fetches and decodes one CSV file. Every failure wraps ErrFetch.
func (f *DataFetcher) Load(ctx context.Context, path string) ([]models.RawRecord, error) {
	start := time.Now()
	data, err := f.source.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	records, err := DecodeCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}

	f.log.Debug("CSV loaded", map[string]interface{}{
		"path":     path,
		"rows":     len(records),
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	})
	return records, nil
}

// FetchBar loads the bar chart dataset
func (f *DataFetcher) FetchBar(ctx context.Context) ([]models.BarRecord, error) {
	raw, err := f.Load(ctx, f.charts.Bar.DataPath)
	if err != nil {
		return nil, err
	}
	return ValidateBar(f.normalizer.NormalizeBar(raw))
}

// FetchDonut loads the donut chart dataset
func (f *DataFetcher) FetchDonut(ctx context.Context) ([]models.DonutRecord, error) {
	raw, err := f.Load(ctx, f.charts.Donut.DataPath)
	if err != nil {
		return nil, err
	}
	return ValidateDonut(f.normalizer.NormalizeDonut(raw))
}

// FetchSpotPrices loads the line chart dataset
func (f *DataFetcher) FetchSpotPrices(ctx context.Context) (models.SpotPrices, error) {
	raw, err := f.Load(ctx, f.charts.Line.DataPath)
	if err != nil {
		return models.SpotPrices{}, err
	}
	return ValidateSpotPrices(f.normalizer.NormalizeSpotPrices(raw))
}

// FetchScatter loads the scatter chart dataset
func (f *DataFetcher) FetchScatter(ctx context.Context) ([]models.ScatterRecord, error) {
	raw, err := f.Load(ctx, f.charts.Scatter.DataPath)
	if err != nil {
		return nil, err
	}
	return ValidateScatter(f.normalizer.NormalizeScatter(raw))
}

// FetchAll loads the four datasets concurrently. Per-chart failures are
// recorded in Datasets.Errors rather than failing the whole call; only a
// cancelled context returns an error.
func (f *DataFetcher) FetchAll(ctx context.Context) (*models.Datasets, error) {
	result := &models.Datasets{
		GeneratedAt: time.Now().UTC(),
		Errors:      make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	record := func(chart string, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		result.Errors[chart] = err.Error()
		if errors.Is(err, ErrEmptyDataset) {
			f.log.Warn("Dataset empty after validation", map[string]interface{}{"chart": chart})
		} else {
			f.log.Error("Dataset fetch failed", err, map[string]interface{}{"chart": chart})
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		data, err := f.FetchBar(ctx)
		record("bar", err)
		mu.Lock()
		result.Bar = data
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		data, err := f.FetchDonut(ctx)
		record("donut", err)
		mu.Lock()
		result.Donut = data
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		data, err := f.FetchSpotPrices(ctx)
		record("line", err)
		mu.Lock()
		result.Line = data
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		data, err := f.FetchScatter(ctx)
		record("scatter", err)
		mu.Lock()
		result.Scatter = data
		mu.Unlock()
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}
