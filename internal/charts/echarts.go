package charts

import (
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
)

// RenderECharts writes a standalone page with an ECharts rendition of every
// chart whose dataset loads. Charts without data are left out.
func (cg *ChartGenerator) RenderECharts(ctx context.Context, w io.Writer) error {
	data, err := cg.fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "TV Energy Dashboard"
	page.SetLayout(components.PageFlexLayout)

	if len(data.Bar) > 0 {
		page.AddCharts(barECharts(cg.charts.Bar, data.Bar))
	}
	if len(data.Donut) > 0 {
		page.AddCharts(donutECharts(cg.charts.Donut, data.Donut))
	}
	if len(data.Line.Series) > 0 {
		page.AddCharts(lineECharts(cg.charts.Line, data.Line))
	}
	if len(data.Scatter) > 0 {
		page.AddCharts(scatterECharts(cg.charts.Scatter, data.Scatter))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render echarts page: %w", err)
	}
	return nil
}

func initOpts(id string, spec config.ChartSpec) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: id,
		Width:   "900px",
		Height:  fmt.Sprintf("%.0fpx", spec.Height),
	})
}

func barECharts(spec config.ChartSpec, records []models.BarRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("echarts-bar", spec),
		charts.WithTitleOpts(opts.Title{Title: Heading("bar"), Subtitle: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel}),
	)

	labels := make([]string, len(records))
	items := make([]opts.BarData, len(records))
	for i, r := range records {
		labels[i] = r.Technology
		items[i] = opts.BarData{Name: r.Technology, Value: r.AvgConsumption}
	}
	bar.SetXAxis(labels).AddSeries("Average power (W)", items)
	return bar
}

func donutECharts(spec config.ChartSpec, records []models.DonutRecord) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts("echarts-donut", spec),
		charts.WithTitleOpts(opts.Title{Title: Heading("donut"), Subtitle: spec.Subtitle}),
	)

	items := make([]opts.PieData, len(records))
	for i, r := range records {
		items[i] = opts.PieData{Name: r.Technology, Value: r.Consumption}
	}
	pie.AddSeries("Consumption", items).
		SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"38%", "70%"},
		}))
	return pie
}

func lineECharts(spec config.ChartSpec, data models.SpotPrices) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("echarts-line", spec),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel}),
	)

	years := make([]string, len(data.Years))
	for i, y := range data.Years {
		years[i] = yearFormat(y)
	}
	line.SetXAxis(years)
	for _, s := range data.Series {
		items := make([]opts.LineData, len(data.Years))
		for i, y := range data.Years {
			if p, ok := s.At(y); ok {
				items[i] = opts.LineData{Value: p.Price}
			} else {
				// ECharts leaves a gap for "-"
				items[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(s.Name, items)
	}
	return line
}

func scatterECharts(spec config.ChartSpec, records []models.ScatterRecord) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		initOpts("echarts-scatter", spec),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel, Type: "value"}),
	)

	// one series per screen technology so the legend separates them
	var order []string
	byTech := make(map[string][]opts.ScatterData)
	for _, r := range records {
		if _, ok := byTech[r.ScreenTech]; !ok {
			order = append(order, r.ScreenTech)
		}
		byTech[r.ScreenTech] = append(byTech[r.ScreenTech], opts.ScatterData{
			Name:       r.Brand,
			Value:      []float64{r.Stars, r.Consumption},
			SymbolSize: int(scatterSymbol(r.ScreenSize)),
		})
	}
	for _, tech := range order {
		name := tech
		if name == "" {
			name = "Unknown"
		}
		scatter.AddSeries(name, byTech[tech])
	}
	return scatter
}

// scatterSymbol maps a screen size in inches to a symbol diameter.
func scatterSymbol(size float64) float64 {
	d := size / 5
	if d < minRadius*2 {
		return minRadius * 2
	}
	if d > maxRadius*2 {
		return maxRadius * 2
	}
	return d
}
