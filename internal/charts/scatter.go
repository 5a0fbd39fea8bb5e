package charts

import (
	"fmt"
	"html"
	"math"
	"time"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
	"tvenergy/internal/scales"
	"tvenergy/internal/scene"
)

const (
	scatterHeadroom = 1.1
	minRadius       = 4
	maxRadius       = 12
)

// drawScatter draws one circle per TV model sized and colored by screen
// size, plus a size legend.
func drawScatter(s *scene.Surface, f frame, spec config.ChartSpec, records []models.ScatterRecord) {
	stars := make([]float64, len(records))
	energy := make([]float64, len(records))
	sizes := make([]float64, len(records))
	for i, r := range records {
		stars[i] = r.Stars
		energy[i] = r.Consumption
		sizes[i] = r.ScreenSize
	}

	w, h := f.inner.width, f.inner.height
	x := scales.NewLinear(scales.Min(stars)-0.5, scales.Max(stars)+0.5, 0, w)
	y := scales.NewLinear(0, scales.Max(energy)*scatterHeadroom, h, 0)
	sizeMin, sizeMax := scales.Extent(sizes)
	radius := scales.NewSqrt(sizeMin, sizeMax, minRadius, maxRadius)
	color := scales.NewSequential(sizeMin, sizeMax)
	yTicks := linearTicks(y, 10, y.TickFormat(10))

	g := f.plot()
	s.Add(nil, g)

	xAxis := axisBottom(linearTicks(x, 10, x.TickFormat(10)), w, "font-size:12px")
	xAxis.Set("transform", translate(0, h))
	s.Add(g,
		gridLeft(yTicks, w, "0.3"),
		xAxis,
		axisTitleBottom(spec.XLabel, w/2, h+45),
		axisLeft(yTicks, h, "font-size:12px"),
		axisTitleLeft(spec.YLabel, h),
	)

	points := scene.El("g", "class", "points")
	s.Add(g, points)
	for i, r := range records {
		rad := radius.Scale(r.ScreenSize)
		circle := scene.El("circle", "class", "point",
			"cx", scene.Num(x.Scale(r.Stars)),
			"cy", scene.Num(y.Scale(r.Consumption)),
			"r", scene.Num(rad),
			"fill", color.Color(r.ScreenSize),
			"opacity", "0.7",
			"stroke", "#fff",
			"stroke-width", "1.5")
		circle.Animate(scene.Animation{
			Attr:     "r",
			From:     "0",
			To:       scene.Num(rad),
			Delay:    time.Duration(i) * 2 * time.Millisecond,
			Duration: 800 * time.Millisecond,
		})

		shape := s.Bind(points, circle, i)
		shape.Group = "scatter"
		shape.Tooltip = scatterTooltip(r)
		shape.Hover = map[string]string{"opacity": "1", "stroke-width": "3"}
	}

	legend := scene.El("g", "class", "size-legend", "transform", translate(w-80, 20))
	for i, size := range []float64{sizeMin, scales.Median(sizes), sizeMax} {
		item := scene.El("g", "transform", translate(0, float64(i*30)))
		item.Append(
			scene.El("circle",
				"r", scene.Num(radius.Scale(size)),
				"fill", color.Color(size),
				"opacity", "0.7"),
			scene.El("text", "x", "25", "y", "5", "style", "font-size:12px").
				WithText(fmt.Sprintf("%.0f\"", math.Round(size))),
		)
		legend.Append(item)
	}
	legend.Append(scene.El("text", "x", "0", "y", "-10", "style", "font-size:13px;font-weight:600").WithText(spec.Subtitle))
	s.Add(g, legend)
}

func scatterTooltip(r models.ScatterRecord) string {
	return fmt.Sprintf("<strong>%s</strong><br/>Screen: %s<br/>Size: %s\"<br/>Rating: %s stars<br/>Consumption: %s kWh/year",
		html.EscapeString(r.Brand),
		html.EscapeString(r.ScreenTech),
		plain(r.ScreenSize),
		plain(r.Stars),
		plain(r.Consumption))
}
