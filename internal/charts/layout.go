package charts

import (
	"fmt"
	"math"
	"strconv"

	"tvenergy/internal/config"
	"tvenergy/internal/scales"
	"tvenergy/internal/scene"
)

// frame is the pixel layout of one chart: the outer SVG size and the plot
// area inside the margins.
type frame struct {
	width, height float64
	inner         struct{ width, height float64 }
	margin        config.Margin
}

func newFrame(spec config.ChartSpec, containerWidth float64) frame {
	w := containerWidth
	if spec.MaxWidth > 0 && w > spec.MaxWidth {
		w = spec.MaxWidth
	}
	f := frame{width: w, height: spec.Height, margin: spec.Margin}
	f.inner.width = math.Max(0, w-spec.Margin.Left-spec.Margin.Right)
	f.inner.height = math.Max(0, spec.Height-spec.Margin.Top-spec.Margin.Bottom)
	return f
}

func (f frame) surface() *scene.Surface {
	return scene.NewSurface(f.width, f.height)
}

// plot returns the group translated to the top-left corner of the plot area.
func (f frame) plot() *scene.Node {
	return scene.El("g", "transform", translate(f.margin.Left, f.margin.Top))
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", scene.Num(x), scene.Num(y))
}

type tick struct {
	pos   float64
	label string
}

func linearTicks(l *scales.Linear, count int, format func(float64) string) []tick {
	values := l.Ticks(count)
	ticks := make([]tick, len(values))
	for i, v := range values {
		ticks[i] = tick{pos: l.Scale(v), label: format(v)}
	}
	return ticks
}

func bandTicks(b *scales.Band) []tick {
	domain := b.Domain()
	ticks := make([]tick, 0, len(domain))
	for _, d := range domain {
		c, _ := b.Center(d)
		ticks = append(ticks, tick{pos: c, label: d})
	}
	return ticks
}

// yearFormat prints integers without grouping.
func yearFormat(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// plain prints a number in its shortest form.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// axisBottom draws a horizontal axis of the given length with ticks below
// the line.
func axisBottom(ticks []tick, length float64, textStyle string) *scene.Node {
	g := scene.El("g", "class", "axis axis-x",
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
		"text-anchor", "middle")
	g.Append(scene.El("path", "class", "domain", "stroke", "currentColor",
		"d", fmt.Sprintf("M0.5,6V0.5H%sV6", scene.Num(length+0.5))))
	for _, t := range ticks {
		tg := scene.El("g", "class", "tick", "transform", translate(t.pos+0.5, 0))
		tg.Append(
			scene.El("line", "stroke", "currentColor", "y2", "6"),
			scene.El("text", "fill", "currentColor", "y", "9", "dy", "0.71em", "style", textStyle).WithText(t.label),
		)
		g.Append(tg)
	}
	return g
}

// axisLeft draws a vertical axis of the given length with labels left of
// the line.
func axisLeft(ticks []tick, length float64, textStyle string) *scene.Node {
	g := scene.El("g", "class", "axis axis-y",
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
		"text-anchor", "end")
	g.Append(scene.El("path", "class", "domain", "stroke", "currentColor",
		"d", fmt.Sprintf("M-6,%sH0.5V0.5H-6", scene.Num(length+0.5))))
	for _, t := range ticks {
		tg := scene.El("g", "class", "tick", "transform", translate(0, t.pos+0.5))
		tg.Append(
			scene.El("line", "stroke", "currentColor", "x2", "-6"),
			scene.El("text", "fill", "currentColor", "x", "-9", "dy", "0.32em", "style", textStyle).WithText(t.label),
		)
		g.Append(tg)
	}
	return g
}

// gridLeft draws unlabelled horizontal lines across the plot at each tick.
func gridLeft(ticks []tick, width float64, opacity string) *scene.Node {
	g := scene.El("g", "class", "grid", "opacity", opacity, "fill", "none")
	for _, t := range ticks {
		tg := scene.El("g", "class", "tick", "transform", translate(0, t.pos+0.5))
		tg.Append(scene.El("line", "stroke", "currentColor", "x2", scene.Num(width)))
		g.Append(tg)
	}
	return g
}

const titleStyle = "font-size:14px;font-weight:600;text-anchor:middle"

func axisTitleBottom(text string, x, y float64) *scene.Node {
	return scene.El("text", "class", "axis-title",
		"x", scene.Num(x),
		"y", scene.Num(y),
		"fill", "#333",
		"style", titleStyle).WithText(text)
}

func axisTitleLeft(text string, plotHeight float64) *scene.Node {
	return scene.El("text", "class", "axis-title",
		"transform", "rotate(-90)",
		"x", scene.Num(-plotHeight/2),
		"y", "-50",
		"fill", "#333",
		"style", titleStyle).WithText(text)
}
