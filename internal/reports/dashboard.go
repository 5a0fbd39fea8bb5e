package reports

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tvenergy/internal/charts"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/llm"
	"tvenergy/internal/logger"
	"tvenergy/internal/models"
)

// narrativeTTL bounds how long a generated narrative is reused by the live
// page.
const narrativeTTL = time.Hour

// DashboardService renders the dashboard page around the four charts
type DashboardService struct {
	chartGen    *charts.ChartGenerator
	fetcher     *fetchers.DataFetcher
	narrator    llm.Narrator
	htmlBuilder *HTMLBuilder
	log         *logger.Logger

	mu          sync.Mutex
	narrative   string
	narrativeAt time.Time
}

// NewDashboardService creates a dashboard service. narrator may be nil, in
// which case pages carry no narrative.
func NewDashboardService(chartGen *charts.ChartGenerator, fetcher *fetchers.DataFetcher, narrator llm.Narrator) *DashboardService {
	return &DashboardService{
		chartGen:    chartGen,
		fetcher:     fetcher,
		narrator:    narrator,
		htmlBuilder: NewHTMLBuilder(),
		log:         logger.Component("reports"),
	}
}

// Charts returns the chart generator behind the page.
func (ds *DashboardService) Charts() *charts.ChartGenerator {
	return ds.chartGen
}

// Page renders the live dashboard at width. Its assets are referenced under
// assetPrefix and the runtime re-renders every chart at its real width.
func (ds *DashboardService) Page(ctx context.Context, width float64, assetPrefix string) (string, error) {
	snippets, err := ds.chartGen.Snippets(ctx, width)
	if err != nil {
		return "", fmt.Errorf("failed to render charts: %w", err)
	}

	narrative := ""
	if ds.narrator != nil {
		narrative, err = ds.cachedNarrative(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			ds.log.Warn("Narrative unavailable", map[string]interface{}{"error": err.Error()})
			narrative = ""
		}
	}

	return ds.htmlBuilder.BuildDashboard(snippets, narrative, PageOptions{
		AssetPrefix: assetPrefix,
		Width:       width,
		GeneratedAt: time.Now(),
	})
}

// Narrate writes the narrative for data. Without a narrator it returns "".
func (ds *DashboardService) Narrate(ctx context.Context, data *models.Datasets) (string, error) {
	if ds.narrator == nil {
		return "", nil
	}
	start := time.Now()
	text, err := ds.narrator.Narrate(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}
	ds.log.Info("Narrative ready", map[string]interface{}{
		"chars":    len(text),
		"duration": time.Since(start).String(),
	})
	return text, nil
}

func (ds *DashboardService) cachedNarrative(ctx context.Context) (string, error) {
	ds.mu.Lock()
	if ds.narrative != "" && time.Since(ds.narrativeAt) < narrativeTTL {
		text := ds.narrative
		ds.mu.Unlock()
		return text, nil
	}
	ds.mu.Unlock()

	data, err := ds.fetcher.FetchAll(ctx)
	if err != nil {
		return "", err
	}
	text, err := ds.Narrate(ctx, data)
	if err != nil {
		return "", err
	}

	ds.mu.Lock()
	ds.narrative = text
	ds.narrativeAt = time.Now()
	ds.mu.Unlock()
	return text, nil
}

// Assets returns the stylesheet and runtime script served next to the page.
func (ds *DashboardService) Assets() (map[string][]byte, error) {
	return ds.htmlBuilder.templateLoader.Assets()
}
