package charts

import (
	"context"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
	"tvenergy/internal/scales"
)

var previewTitleStyle = chart.Style{
	FontSize:  14,
	FontColor: drawing.ColorFromHex("333333"),
}

// RenderPNG draws a static PNG preview of the named chart. Unlike Render, a
// dataset failure is returned instead of drawn.
func (cg *ChartGenerator) RenderPNG(ctx context.Context, name string, width int, w io.Writer) error {
	spec, err := cg.Spec(name)
	if err != nil {
		return err
	}
	if err := ValidateWidth(float64(width)); err != nil {
		return err
	}

	var graph interface {
		Render(rp chart.RendererProvider, w io.Writer) error
	}
	switch name {
	case "bar":
		records, err := cg.fetcher.FetchBar(ctx)
		if err != nil {
			return err
		}
		graph = barPreview(spec, width, records)
	case "donut":
		records, err := cg.fetcher.FetchDonut(ctx)
		if err != nil {
			return err
		}
		graph = donutPreview(spec, width, records)
	case "line":
		data, err := cg.fetcher.FetchSpotPrices(ctx)
		if err != nil {
			return err
		}
		graph = linePreview(spec, width, data)
	case "scatter":
		records, err := cg.fetcher.FetchScatter(ctx)
		if err != nil {
			return err
		}
		graph = scatterPreview(spec, width, records)
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s preview: %w", name, err)
	}
	return nil
}

func previewPadding(spec config.ChartSpec) chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    int(spec.Margin.Top) + 20,
			Left:   int(spec.Margin.Left),
			Right:  int(spec.Margin.Right),
			Bottom: int(spec.Margin.Bottom),
		},
	}
}

func barPreview(spec config.ChartSpec, width int, records []models.BarRecord) *chart.BarChart {
	values := make([]float64, len(records))
	bars := make([]chart.Value, len(records))
	techs := make([]string, len(records))
	for i, r := range records {
		techs[i] = r.Technology
	}
	color := scales.NewOrdinal(techs, spec.Palette)
	for i, r := range records {
		values[i] = r.AvgConsumption
		fill := scales.ParseHex(color.Color(r.Technology))
		bars[i] = chart.Value{
			Label: r.Technology,
			Value: r.AvgConsumption,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	barWidth := (width - int(spec.Margin.Left+spec.Margin.Right)) / (2*len(records) + 1)
	if barWidth < 10 {
		barWidth = 10
	}
	return &chart.BarChart{
		Title:      spec.Title,
		TitleStyle: previewTitleStyle,
		Background: previewPadding(spec),
		Width:      width,
		Height:     int(spec.Height),
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		YAxis: chart.YAxis{
			Name: spec.YLabel,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: scales.Max(values) * barHeadroom,
			},
		},
		Bars: bars,
	}
}

func donutPreview(spec config.ChartSpec, width int, records []models.DonutRecord) *chart.DonutChart {
	techs := make([]string, len(records))
	for i, r := range records {
		techs[i] = r.Technology
	}
	color := scales.NewOrdinal(techs, spec.Palette)

	values := make([]chart.Value, len(records))
	for i, r := range records {
		values[i] = chart.Value{
			Label: r.Technology,
			Value: r.Consumption,
			Style: chart.Style{
				FillColor:   scales.ParseHex(color.Color(r.Technology)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 3,
				FontColor:   drawing.ColorWhite,
			},
		}
	}

	size := width
	if spec.MaxWidth > 0 && float64(size) > spec.MaxWidth {
		size = int(spec.MaxWidth)
	}
	return &chart.DonutChart{
		Title:      spec.Title,
		TitleStyle: previewTitleStyle,
		Width:      size,
		Height:     int(spec.Height),
		Values:     values,
	}
}

func linePreview(spec config.ChartSpec, width int, data models.SpotPrices) *chart.Chart {
	names := make([]string, len(data.Series))
	for i, s := range data.Series {
		names[i] = s.Name
	}
	color := scales.NewOrdinal(names, spec.Palette)

	var prices []float64
	series := make([]chart.Series, 0, len(data.Series))
	for _, s := range data.Series {
		xs := make([]float64, len(s.Values))
		ys := make([]float64, len(s.Values))
		for i, p := range s.Values {
			xs[i] = p.Year
			ys[i] = p.Price
		}
		prices = append(prices, ys...)
		series = append(series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeColor: scales.ParseHex(color.Color(s.Name)),
				StrokeWidth: 3,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := &chart.Chart{
		Title:      spec.Title,
		TitleStyle: previewTitleStyle,
		Background: previewPadding(spec),
		Width:      width,
		Height:     int(spec.Height),
		XAxis: chart.XAxis{
			Name: spec.XLabel,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return yearFormat(f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: spec.YLabel,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: scales.Max(prices) * lineHeadroom,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(graph)}
	return graph
}

func scatterPreview(spec config.ChartSpec, width int, records []models.ScatterRecord) *chart.Chart {
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	sizes := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.Stars
		ys[i] = r.Consumption
		sizes[i] = r.ScreenSize
	}
	color := scales.NewSequential(scales.Extent(sizes))

	return &chart.Chart{
		Title:      spec.Title,
		TitleStyle: previewTitleStyle,
		Background: previewPadding(spec),
		Width:      width,
		Height:     int(spec.Height),
		XAxis: chart.XAxis{
			Name: spec.XLabel,
			Range: &chart.ContinuousRange{
				Min: scales.Min(xs) - 0.5,
				Max: scales.Max(xs) + 0.5,
			},
		},
		YAxis: chart.YAxis{
			Name: spec.YLabel,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: scales.Max(ys) * scatterHeadroom,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: spec.Subtitle,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return color.RGBA(sizes[index])
					},
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
}
