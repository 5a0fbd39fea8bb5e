package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tvenergy/internal/charts"
	"tvenergy/internal/storage"
)

// File names inside a snapshot folder besides the per-chart files.
const (
	IndexFile     = "index.html"
	DatasetsFile  = "datasets.json"
	NarrativeFile = "narrative.md"
)

// FileGenerator handles generation of all snapshot files
type FileGenerator struct {
	dashboard *DashboardService
}

// GeneratedFiles contains all files generated for a snapshot
type GeneratedFiles struct {
	HTMLContent string
	SVGFiles    map[string][]byte
	ImageFiles  map[string][]byte
	JSONFiles   map[string][]byte
	AssetFiles  map[string][]byte // CSS, runtime script, narrative
	FolderPath  string
	GeneratedAt time.Time
	Errors      map[string]string // per-chart dataset failures
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(dashboard *DashboardService) *FileGenerator {
	return &FileGenerator{dashboard: dashboard}
}

// GenerateAllFiles renders every snapshot file at width. Chart dataset
// failures are kept in the snapshot (placeholders, Errors); only a cancelled
// context or a broken page template fails the call.
func (fg *FileGenerator) GenerateAllFiles(ctx context.Context, width float64, timestamp time.Time) (*GeneratedFiles, error) {
	log := fg.dashboard.log
	chartGen := fg.dashboard.chartGen
	if err := charts.ValidateWidth(width); err != nil {
		return nil, err
	}

	files := &GeneratedFiles{
		SVGFiles:    make(map[string][]byte),
		ImageFiles:  make(map[string][]byte),
		JSONFiles:   make(map[string][]byte),
		AssetFiles:  make(map[string][]byte),
		FolderPath:  storage.GenerateExportFolderPath(timestamp),
		GeneratedAt: timestamp,
	}

	// 1. Normalized datasets
	datasets, err := fg.dashboard.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch datasets: %w", err)
	}
	datasets.GeneratedAt = timestamp.UTC()
	files.Errors = datasets.Errors
	raw, err := json.MarshalIndent(datasets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal datasets: %w", err)
	}
	files.JSONFiles[DatasetsFile] = raw

	// 2. Narrative
	narrative, err := fg.dashboard.Narrate(ctx, datasets)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("Failed to generate narrative", map[string]interface{}{"error": err.Error()})
		narrative = ""
	}
	if narrative != "" {
		files.AssetFiles[NarrativeFile] = []byte(narrative)
	}

	// 3. Chart SVGs
	snippets, err := chartGen.Snippets(ctx, width)
	if err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}
	for _, s := range snippets {
		files.SVGFiles[s.Name+".svg"] = []byte(s.SVG)
	}

	// 4. PNG previews of the charts that have data
	for _, name := range charts.Names {
		if _, failed := datasets.Errors[name]; failed {
			continue
		}
		var buf bytes.Buffer
		if err := chartGen.RenderPNG(ctx, name, int(width), &buf); err != nil {
			log.Warn("Failed to render PNG preview", map[string]interface{}{"chart": name, "error": err.Error()})
			continue
		}
		files.ImageFiles[name+".png"] = buf.Bytes()
	}

	// 5. Static assets
	assets, err := fg.dashboard.Assets()
	if err != nil {
		return nil, err
	}
	for name, content := range assets {
		files.AssetFiles[name] = content
	}

	// 6. Page
	page, err := fg.dashboard.htmlBuilder.BuildDashboard(snippets, narrative, PageOptions{
		Static:      true,
		Width:       width,
		GeneratedAt: timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}
	files.HTMLContent = page

	log.Info("Snapshot files generated", map[string]interface{}{
		"folder": files.FolderPath,
		"svg":    len(files.SVGFiles),
		"png":    len(files.ImageFiles),
		"errors": len(files.Errors),
	})
	return files, nil
}
