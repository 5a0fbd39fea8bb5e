package charts

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"tvenergy/internal/config"
	"tvenergy/internal/fetchers"
	"tvenergy/internal/models"
	"tvenergy/internal/scales"
	"tvenergy/internal/scene"
)

const (
	lineHeadroom   = 1.1
	legendRow      = 25
	lineActive     = "0.8"
	lineInactive   = "0.1"
	lineRevealTime = 2 * time.Second
)

// lineScales builds the x (year) and y (price) scales of the line chart.
// The x extent covers every valid row, including years without a plotted
// price.
func lineScales(data models.SpotPrices, w, h float64) (*scales.Linear, *scales.Linear) {
	x0, x1 := scales.Extent(data.Years)
	var prices []float64
	for _, s := range data.Series {
		for _, p := range s.Values {
			prices = append(prices, p.Price)
		}
	}
	x := scales.NewLinear(x0, x1, 0, w)
	y := scales.NewLinear(0, scales.Max(prices)*lineHeadroom, h, 0)
	return x, y
}

// drawLine draws one monotone path per series revealed left to right, end
// dots, a focus guide with its input overlay and a clickable legend.
func drawLine(s *scene.Surface, f frame, spec config.ChartSpec, data models.SpotPrices) {
	w, h := f.inner.width, f.inner.height
	x, y := lineScales(data, w, h)

	names := make([]string, len(data.Series))
	for i, series := range data.Series {
		names[i] = series.Name
	}
	color := scales.NewOrdinal(names, spec.Palette)
	yTicks := linearTicks(y, 10, y.TickFormat(10))

	g := f.plot()
	s.Add(nil, g)

	xAxis := axisBottom(linearTicks(x, 10, yearFormat), w, "font-size:12px")
	xAxis.Set("transform", translate(0, h))
	s.Add(g,
		gridLeft(yTicks, w, "0.2"),
		xAxis,
		axisTitleBottom(spec.XLabel, w/2, h+45),
		axisLeft(yTicks, h, "font-size:12px"),
		axisTitleLeft(spec.YLabel, h),
	)

	focus := scene.El("g", "class", "focus", "display", "none")
	focus.Append(scene.El("line", "class", "x-hover-line",
		"y1", "0",
		"y2", scene.Num(h),
		"stroke", "#999",
		"stroke-width", "1",
		"stroke-dasharray", "3,3"))
	s.Add(g, focus)

	// the overlay sits under the paths so both the series hover and the
	// focus guide receive pointer events
	s.Add(g, scene.El("rect", "class", "overlay",
		"width", scene.Num(w),
		"height", scene.Num(h),
		"fill", "none",
		"pointer-events", "all",
		"data-focus", "/charts/line/focus"))

	lines := scene.El("g", "class", "lines")
	dots := scene.El("g", "class", "end-dots")
	s.Add(g, lines, dots)

	for i, series := range data.Series {
		points := make([]scene.Point, len(series.Values))
		for j, p := range series.Values {
			points[j] = scene.Point{X: x.Scale(p.Year), Y: y.Scale(p.Price)}
		}
		curve := scene.MonotoneX(points)
		length := scene.Num(math.Ceil(curve.Length) + 1)

		path := scene.El("path", "class", "line",
			"data-series", series.Name,
			"fill", "none",
			"stroke", color.Color(series.Name),
			"stroke-width", "3",
			"d", curve.Path,
			"opacity", lineActive,
			"stroke-dasharray", length+" "+length,
			"stroke-dashoffset", "0")
		path.Animate(scene.Animation{Attr: "stroke-dashoffset", From: length, To: "0", Duration: lineRevealTime})

		shape := s.Bind(lines, path, i)
		shape.Group = "line"
		shape.Hover = map[string]string{"stroke-width": "5", "opacity": "1"}
		shape.Others = map[string]string{"opacity": "0.2"}

		if last, ok := series.Last(); ok {
			dot := scene.El("circle", "class", "end-dot",
				"cx", scene.Num(x.Scale(last.Year)),
				"cy", scene.Num(y.Scale(last.Price)),
				"r", "5",
				"fill", color.Color(series.Name),
				"stroke", "white",
				"stroke-width", "2")
			dot.Animate(scene.Animation{Attr: "r", From: "0", To: "5", Delay: lineRevealTime, Duration: 300 * time.Millisecond})
			s.Add(dots, dot)
		}
	}

	s.Add(g, lineLegend(data.Series, color, w))
}

func lineLegend(series []models.PriceSeries, color *scales.Ordinal, plotWidth float64) *scene.Node {
	legend := scene.El("g", "class", "legend", "transform", translate(plotWidth+20, 20))

	title := "States"
	for i, s := range series {
		if s.Name == fetchers.AverageSeries {
			title = "Data"
		}
		item := scene.El("g", "class", "legend-item",
			"data-series", s.Name,
			"data-active", lineActive,
			"data-inactive", lineInactive,
			"transform", translate(0, float64(i*legendRow)),
			"style", "cursor:pointer")
		item.Append(
			scene.El("line", "x1", "0", "x2", "30", "y1", "0", "y2", "0",
				"stroke", color.Color(s.Name),
				"stroke-width", "3"),
			scene.El("text", "x", "40", "y", "5", "style", "font-size:13px;font-weight:500").WithText(s.Name),
		)
		legend.Append(item)
	}

	legend.Append(
		scene.El("text", "x", "0", "y", "-15", "style", "font-size:13px;font-weight:600").WithText(title),
		scene.El("text", "x", "0", "y", scene.Num(float64(len(series)*legendRow+15)),
			"style", "font-size:11px;fill:#999").WithText("Click to toggle"),
	)
	return legend
}

// FocusPoint is the result of a line focus lookup: where to draw the guide
// and what the tooltip says.
type FocusPoint struct {
	Year    float64 `json:"year"`
	X       float64 `json:"x"`
	Tooltip string  `json:"tooltip"`
}

// LineFocus resolves a pointer position over the line chart to the nearest
// sampled year.
type LineFocus struct {
	x      *scales.Linear
	years  []float64
	series []models.PriceSeries
}

// NewLineFocus builds the lookup for data drawn into a plot area of w x h.
func NewLineFocus(data models.SpotPrices, w, h float64) *LineFocus {
	x, _ := lineScales(data, w, h)
	return &LineFocus{x: x, years: data.Years, series: data.Series}
}

// Lookup inverts px to a year and returns the nearest sample year. A
// position exactly between two samples resolves to the later one. The
// second result is false when there are no samples.
func (lf *LineFocus) Lookup(px float64) (FocusPoint, bool) {
	if len(lf.years) == 0 {
		return FocusPoint{}, false
	}
	x0 := lf.x.Invert(px)
	i := scales.BisectLeft(lf.years, x0)
	switch {
	case i >= len(lf.years):
		i = len(lf.years) - 1
	case i > 0 && x0-lf.years[i-1] < lf.years[i]-x0:
		i--
	}
	year := lf.years[i]

	var b strings.Builder
	fmt.Fprintf(&b, "<strong>Year: %s</strong><br/>", yearFormat(year))
	for _, s := range lf.series {
		if p, ok := s.At(year); ok {
			fmt.Fprintf(&b, "%s: %.2f/MWh<br/>", html.EscapeString(s.Name), p.Price)
		}
	}
	return FocusPoint{Year: year, X: lf.x.Scale(year), Tooltip: b.String()}, true
}
