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
	donutInnerRatio = 0.55
	donutHoverRatio = 1.08
	donutTweenSteps = 20
)

// donutRadius is the outer radius of the ring for a surface of w x h.
func donutRadius(w, h float64, margin float64) float64 {
	return math.Max(0, math.Min(w, h)/2-margin-20)
}

// drawDonut draws one arc per record in input order around a centre summary.
func drawDonut(s *scene.Surface, f frame, spec config.ChartSpec, records []models.DonutRecord) {
	techs := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		techs[i] = r.Technology
		values[i] = r.Consumption
	}

	radius := donutRadius(f.width, f.height, spec.Margin.Top)
	inner := radius * donutInnerRatio
	total := scales.Sum(values)
	color := scales.NewOrdinal(techs, spec.Palette)

	g := scene.El("g", "transform", translate(f.width/2, f.height/2))
	s.Add(nil, g)

	for i, slice := range scene.Pie(values) {
		r := records[i]
		arc := scene.Arc{Inner: inner, Outer: radius, Start: slice.StartAngle, End: slice.EndAngle}
		hover := arc
		hover.Outer = radius * donutHoverRatio

		ag := scene.El("g", "class", "arc")
		s.Add(g, ag)

		path := scene.El("path", "class", "slice",
			"d", arc.Path(),
			"fill", color.Color(r.Technology),
			"stroke", "white",
			"stroke-width", "3",
			"opacity", "0.85")
		path.Animate(scene.Animation{
			Attr:     "d",
			From:     scene.Arc{Inner: inner, Outer: radius}.Path(),
			Values:   arc.Tween(donutTweenSteps),
			Duration: time.Second,
		})

		shape := s.Bind(ag, path, i)
		shape.Group = "donut"
		shape.Tooltip = donutTooltip(r, total)
		shape.Hover = map[string]string{
			"d":       hover.Path(),
			"opacity": "1",
		}

		c := arc.Centroid()
		label := scene.El("text", "class", "slice-label",
			"transform", translate(c.X, c.Y),
			"text-anchor", "middle",
			"opacity", "1",
			"style", "font-size:14px;font-weight:600;fill:#fff").WithText(r.Technology)
		label.Animate(scene.Animation{Attr: "opacity", From: "0", To: "1", Delay: time.Second, Duration: 500 * time.Millisecond})
		s.Add(ag, label)
	}

	s.Add(g,
		scene.El("text", "class", "center-title",
			"text-anchor", "middle",
			"y", "-10",
			"style", "font-size:16px;font-weight:600;fill:#333").WithText(spec.Title),
		scene.El("text", "class", "center-value",
			"text-anchor", "middle",
			"y", "20",
			"style", "font-size:22px;font-weight:bold;fill:#667eea").WithText(fmt.Sprintf("%.0f", scales.Mean(values))),
		scene.El("text", "class", "center-unit",
			"text-anchor", "middle",
			"y", "40",
			"style", "font-size:13px;fill:#666").WithText(spec.Subtitle),
	)
}

func donutTooltip(r models.DonutRecord, total float64) string {
	share := 0.0
	if total > 0 {
		share = r.Consumption / total * 100
	}
	return fmt.Sprintf("<strong>%s</strong><br/>Avg: %.1f kWh/year<br/>%.1f%% of total",
		html.EscapeString(r.Technology), r.Consumption, share)
}
