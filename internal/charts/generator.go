package charts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"tvenergy/internal/config"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/logger"
	"tvenergy/internal/scene"
)

// Placeholder messages drawn instead of a chart.
const (
	MsgNoData    = "No valid data found in CSV file"
	MsgLoadError = "Error loading data. Check console for details."
)

var (
	// ErrUnknownChart is returned for a chart name outside Names.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrInvalidWidth is returned for a container width that is not a finite
	// value in (0, MaxWidth].
	ErrInvalidWidth = errors.New("invalid width")
)

// MaxWidth is the widest container a chart is rendered for.
const MaxWidth = 4096

// ValidateWidth reports whether width can be rendered.
func ValidateWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 || width > MaxWidth {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}
	return nil
}

// Names lists the charts in page order.
var Names = []string{"bar", "donut", "line", "scatter"}

// ChartGenerator renders the charts into the containers of a host document
type ChartGenerator struct {
	fetcher *fetchers.DataFetcher
	charts  config.ChartsConfig
	doc     *scene.Document
	log     *logger.Logger

	// focus lookups built from the line dataset of the latest line render,
	// keyed by container width
	focusMu sync.Mutex
	focus   map[float64]*LineFocus
}

// NewChartGenerator creates a generator drawing into a document with one
// container per configured chart
func NewChartGenerator(fetcher *fetchers.DataFetcher, charts config.ChartsConfig) *ChartGenerator {
	containers := make([]string, 0, len(Names))
	for _, name := range Names {
		spec, _ := charts.Spec(name)
		containers = append(containers, spec.Container)
	}
	return &ChartGenerator{
		fetcher: fetcher,
		charts:  charts,
		doc:     scene.NewDocument(containers...),
		log:     logger.Component("charts"),
		focus:   make(map[float64]*LineFocus),
	}
}

// Document returns the host document the charts are mounted in.
func (cg *ChartGenerator) Document() *scene.Document {
	return cg.doc
}

// Spec returns the configuration of the named chart.
func (cg *ChartGenerator) Spec(name string) (config.ChartSpec, error) {
	spec, ok := cg.charts.Spec(name)
	if !ok {
		return config.ChartSpec{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return spec, nil
}

// Render runs the whole pipeline for one chart at the given container width
// and mounts the result, replacing whatever the container held. Load and
// validation failures are drawn as placeholders, not returned.
func (cg *ChartGenerator) Render(ctx context.Context, name string, width float64) (*scene.Surface, error) {
	spec, err := cg.Spec(name)
	if err != nil {
		return nil, err
	}
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}

	log := cg.log.WithFields(map[string]interface{}{
		"chart": name,
		"width": width,
	})

	f := newFrame(spec, width)
	s := f.surface()
	records, err := cg.draw(ctx, name, s, f, spec)

	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, fetchers.ErrEmptyDataset):
		log.Info("No valid records, drawing placeholder", map[string]interface{}{"path": spec.DataPath})
		s.Placeholder(MsgNoData)
	default:
		log.Error("Chart data failed to load", err, map[string]interface{}{"path": spec.DataPath})
		s.Placeholder(MsgLoadError)
	}

	s.Finalize()
	if err := cg.doc.Mount(spec.Container, s); err != nil {
		return nil, fmt.Errorf("failed to mount %s chart: %w", name, err)
	}

	log.Debug("Chart rendered", map[string]interface{}{
		"records": records,
		"shapes":  len(s.Shapes()),
	})
	return s, nil
}

// draw fetches the chart's dataset and draws it onto s, returning the number
// of records drawn.
func (cg *ChartGenerator) draw(ctx context.Context, name string, s *scene.Surface, f frame, spec config.ChartSpec) (int, error) {
	switch name {
	case "bar":
		records, err := cg.fetcher.FetchBar(ctx)
		if err != nil {
			return 0, err
		}
		drawBar(s, f, spec, records)
		return len(records), nil
	case "donut":
		records, err := cg.fetcher.FetchDonut(ctx)
		if err != nil {
			return 0, err
		}
		drawDonut(s, f, spec, records)
		return len(records), nil
	case "line":
		data, err := cg.fetcher.FetchSpotPrices(ctx)
		if err != nil {
			cg.resetFocus(f.width, nil)
			return 0, err
		}
		drawLine(s, f, spec, data)
		cg.resetFocus(f.width, NewLineFocus(data, f.inner.width, f.inner.height))
		return len(data.Series), nil
	case "scatter":
		records, err := cg.fetcher.FetchScatter(ctx)
		if err != nil {
			return 0, err
		}
		drawScatter(s, f, spec, records)
		return len(records), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// Focus returns the focus lookup for a line chart rendered at the given
// container width. Lookups come from the dataset of the latest line render
// and are keyed by the drawn width; the dataset is only loaded when no
// lookup exists for that width yet.
func (cg *ChartGenerator) Focus(ctx context.Context, width float64) (*LineFocus, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	f := newFrame(cg.charts.Line, width)
	cg.focusMu.Lock()
	lf, ok := cg.focus[f.width]
	cg.focusMu.Unlock()
	if ok {
		return lf, nil
	}

	data, err := cg.fetcher.FetchSpotPrices(ctx)
	if err != nil {
		return nil, err
	}
	lf = NewLineFocus(data, f.inner.width, f.inner.height)

	cg.focusMu.Lock()
	cg.focus[f.width] = lf
	cg.focusMu.Unlock()
	return lf, nil
}

// resetFocus drops the lookups of the previous line dataset and keeps lf
// for the drawn width when it is not nil.
func (cg *ChartGenerator) resetFocus(width float64, lf *LineFocus) {
	cg.focusMu.Lock()
	defer cg.focusMu.Unlock()
	cg.focus = make(map[float64]*LineFocus)
	if lf != nil {
		cg.focus[width] = lf
	}
}
