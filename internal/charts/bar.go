package charts

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
	"tvenergy/internal/scales"
	"tvenergy/internal/scene"
)

const (
	barPadding  = 0.3
	barHeadroom = 1.2
	barLift     = 5
)

// drawBar draws one rounded bar per record growing from the baseline, with
// value labels above each bar.
func drawBar(s *scene.Surface, f frame, spec config.ChartSpec, records []models.BarRecord) {
	techs := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		techs[i] = r.Technology
		values[i] = r.AvgConsumption
	}

	w, h := f.inner.width, f.inner.height
	x := scales.NewBand(techs, 0, w, barPadding)
	y := scales.NewLinear(0, scales.Max(values)*barHeadroom, h, 0)
	color := scales.NewOrdinal(techs, spec.Palette)
	yTicks := linearTicks(y, 10, y.TickFormat(10))

	g := f.plot()
	s.Add(nil, g)

	xAxis := axisBottom(bandTicks(x), w, "font-size:13px;font-weight:600")
	xAxis.Set("transform", translate(0, h))
	s.Add(g,
		gridLeft(yTicks, w, "0.3"),
		xAxis,
		axisTitleBottom(spec.XLabel, w/2, h+50),
		axisLeft(yTicks, h, "font-size:12px"),
		axisTitleLeft(spec.YLabel, h),
	)

	bars := scene.El("g", "class", "bars")
	labels := scene.El("g", "class", "labels")
	s.Add(g, bars, labels)

	for i, r := range records {
		left, _ := x.Position(r.Technology)
		center, _ := x.Center(r.Technology)
		top := y.Scale(r.AvgConsumption)
		height := h - top
		delay := time.Duration(i) * 100 * time.Millisecond

		rect := scene.El("rect", "class", "bar").
			SetF("x", left).
			SetF("y", top).
			SetF("width", x.Bandwidth()).
			SetF("height", height).
			Set("fill", color.Color(r.Technology)).
			Set("rx", "5").
			Set("opacity", "0.85")
		rect.Animate(scene.Animation{Attr: "y", From: scene.Num(h), To: scene.Num(top), Delay: delay, Duration: time.Second})
		rect.Animate(scene.Animation{Attr: "height", From: "0", To: scene.Num(height), Delay: delay, Duration: time.Second})

		shape := s.Bind(bars, rect, i)
		shape.Group = "bar"
		shape.Tooltip = barTooltip(r)
		shape.Hover = map[string]string{
			"opacity": "1",
			"y":       scene.Num(top - barLift),
			"height":  scene.Num(height + barLift),
		}

		label := scene.El("text", "class", "label",
			"x", scene.Num(center),
			"y", scene.Num(top-10),
			"text-anchor", "middle",
			"opacity", "1",
			"style", "font-size:13px;font-weight:600;fill:#333").
			WithText(fmt.Sprintf("%.0fW", r.AvgConsumption))
		label.Animate(scene.Animation{Attr: "opacity", From: "0", To: "1", Delay: time.Second, Duration: 500 * time.Millisecond})
		s.Add(labels, label)
	}

	s.Add(g, scene.El("text", "class", "chart-title",
		"x", scene.Num(w/2),
		"y", "-10",
		"text-anchor", "middle",
		"style", "font-size:15px;font-weight:600;fill:#333").WithText(spec.Title))
}

func barTooltip(r models.BarRecord) string {
	return fmt.Sprintf("<strong>%s</strong><br/>Avg Consumption: %.1fW<br/>Sample Size: %s TVs",
		html.EscapeString(r.Technology), r.AvgConsumption, strconv.FormatFloat(r.Count, 'f', -1, 64))
}
