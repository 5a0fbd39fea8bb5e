package scene

import (
	"fmt"
	"math"
	"strings"
)

const tau = 2 * math.Pi

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Slice is one pie segment. Angles are radians clockwise from twelve
// o'clock.
type Slice struct {
	Index      int
	Value      float64
	StartAngle float64
	EndAngle   float64
}

// Pie lays values out around the circle in input order. Non-positive values
// get zero-width slices.
func Pie(values []float64) []Slice {
	var sum float64
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	slices := make([]Slice, len(values))
	k := 0.0
	if sum > 0 {
		k = tau / sum
	}
	a := 0.0
	for i, v := range values {
		width := 0.0
		if v > 0 {
			width = v * k
		}
		slices[i] = Slice{Index: i, Value: v, StartAngle: a, EndAngle: a + width}
		a += width
	}
	return slices
}

// Arc describes an annular sector centred on the origin.
type Arc struct {
	Inner, Outer float64
	Start, End   float64
}

func polar(r, a float64) Point {
	return Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
}

// Path returns SVG path data for the sector. A full turn is drawn a hair
// short of closing so every arc shares the same command structure, which
// keeps path keyframes interpolable.
func (a Arc) Path() string {
	start, end := a.Start, a.End
	if end-start >= tau-1e-6 {
		end = start + tau - 1e-4
	}
	large := 0
	if end-start > math.Pi {
		large = 1
	}

	o0, o1 := polar(a.Outer, start), polar(a.Outer, end)
	i1, i0 := polar(a.Inner, end), polar(a.Inner, start)

	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", Num(o0.X), Num(o0.Y))
	fmt.Fprintf(&b, "A%s,%s,0,%d,1,%s,%s", Num(a.Outer), Num(a.Outer), large, Num(o1.X), Num(o1.Y))
	fmt.Fprintf(&b, "L%s,%s", Num(i1.X), Num(i1.Y))
	fmt.Fprintf(&b, "A%s,%s,0,%d,0,%s,%s", Num(a.Inner), Num(a.Inner), large, Num(i0.X), Num(i0.Y))
	b.WriteString("Z")
	return b.String()
}

// Centroid returns the midpoint of the sector's centre line.
func (a Arc) Centroid() Point {
	r := (a.Inner + a.Outer) / 2
	angle := (a.Start+a.End)/2 - math.Pi/2
	return Point{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}
}

// Tween returns path keyframes growing the sector from a zero-angle wedge at
// twelve o'clock, interpolating both angles linearly.
func (a Arc) Tween(frames int) []string {
	if frames < 1 {
		frames = 1
	}
	out := make([]string, 0, frames)
	for f := 1; f <= frames; f++ {
		t := float64(f) / float64(frames)
		out = append(out, Arc{Inner: a.Inner, Outer: a.Outer, Start: a.Start * t, End: a.End * t}.Path())
	}
	return out
}

// Curve is SVG path data with its approximate rendered length.
type Curve struct {
	Path   string
	Length float64
}

type monotone struct {
	b              strings.Builder
	length         float64
	state          int
	x0, y0, x1, y1 float64
	t0             float64
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// slope3 returns the tangent at (x1, y1) given the neighbouring points,
// limited so the curve never overshoots between samples.
func (m *monotone) slope3(x2, y2 float64) float64 {
	h0 := m.x1 - m.x0
	h1 := x2 - m.x1
	d0, d1 := h0, h1
	if d0 == 0 {
		d0 = math.Copysign(0, h1)
	}
	if d1 == 0 {
		d1 = math.Copysign(0, h0)
	}
	s0 := (m.y1 - m.y0) / d0
	s1 := (y2 - m.y1) / d1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	t := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t
}

func (m *monotone) slope2(t float64) float64 {
	h := m.x1 - m.x0
	if h == 0 {
		return t
	}
	return (3*(m.y1-m.y0)/h - t) / 2
}

func (m *monotone) bezier(t0, t1 float64) {
	dx := (m.x1 - m.x0) / 3
	c1 := Point{m.x0 + dx, m.y0 + dx*t0}
	c2 := Point{m.x1 - dx, m.y1 - dx*t1}
	end := Point{m.x1, m.y1}
	fmt.Fprintf(&m.b, "C%s,%s,%s,%s,%s,%s", Num(c1.X), Num(c1.Y), Num(c2.X), Num(c2.Y), Num(end.X), Num(end.Y))
	m.length += bezierLength(Point{m.x0, m.y0}, c1, c2, end)
}

func (m *monotone) point(x, y float64) {
	if m.state > 0 && x == m.x1 && y == m.y1 {
		return
	}
	t1 := math.NaN()
	switch m.state {
	case 0:
		m.state = 1
		fmt.Fprintf(&m.b, "M%s,%s", Num(x), Num(y))
	case 1:
		m.state = 2
	case 2:
		m.state = 3
		t1 = m.slope3(x, y)
		m.bezier(m.slope2(t1), t1)
	default:
		t1 = m.slope3(x, y)
		m.bezier(m.t0, t1)
	}
	m.x0, m.x1 = m.x1, x
	m.y0, m.y1 = m.y1, y
	m.t0 = t1
}

func (m *monotone) end() {
	switch m.state {
	case 1:
		m.b.WriteString("Z")
	case 2:
		fmt.Fprintf(&m.b, "L%s,%s", Num(m.x1), Num(m.y1))
		m.length += math.Hypot(m.x1-m.x0, m.y1-m.y0)
	case 3:
		m.bezier(m.t0, m.slope2(m.t0))
	}
}

// MonotoneX interpolates points (sorted by x) with a cubic curve that
// preserves monotonicity in y between samples.
func MonotoneX(points []Point) Curve {
	var m monotone
	for _, p := range points {
		m.point(p.X, p.Y)
	}
	m.end()
	return Curve{Path: m.b.String(), Length: m.length}
}

func bezierLength(p0, p1, p2, p3 Point) float64 {
	const samples = 32
	var length float64
	prev := p0
	for i := 1; i <= samples; i++ {
		t := float64(i) / samples
		mt := 1 - t
		cur := Point{
			X: mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X,
			Y: mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y,
		}
		length += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		prev = cur
	}
	return length
}
