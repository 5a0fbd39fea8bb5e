package scales

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Ordinal assigns palette colors to categories in first-seen order, cycling
// through the palette.
type Ordinal struct {
	palette []string
	index   map[string]int
}

// NewOrdinal builds an ordinal color scale with domain as the initial
// category order.
func NewOrdinal(domain, palette []string) *Ordinal {
	o := &Ordinal{
		palette: append([]string(nil), palette...),
		index:   make(map[string]int, len(domain)),
	}
	for _, d := range domain {
		o.add(d)
	}
	return o
}

func (o *Ordinal) add(v string) int {
	if i, ok := o.index[v]; ok {
		return i
	}
	i := len(o.index)
	o.index[v] = i
	return i
}

// Color returns the palette entry for v. Unknown categories are appended to
// the domain.
func (o *Ordinal) Color(v string) string {
	if len(o.palette) == 0 {
		return "#000000"
	}
	return o.palette[o.add(v)%len(o.palette)]
}

// Sequential maps a numeric domain onto the viridis color ramp.
type Sequential struct {
	min, max float64
}

// NewSequential builds a viridis scale over [min, max].
func NewSequential(min, max float64) *Sequential {
	return &Sequential{min: min, max: max}
}

// RGBA returns the viridis color for v, clamped to the domain.
func (s *Sequential) RGBA(v float64) drawing.Color {
	lo, hi := s.min, s.max
	if !(hi > lo) {
		return chart.Viridis(0.5, 0, 1)
	}
	v = math.Max(lo, math.Min(hi, v))
	return chart.Viridis(v, lo, hi)
}

// Color returns the viridis color for v as a hex string.
func (s *Sequential) Color(v float64) string {
	return Hex(s.RGBA(v))
}

// Hex formats c as #rrggbb.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex converts #rrggbb (or #rgb) into a drawing color.
func ParseHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// Sqrt maps a domain to a range through a square root, so that circle area
// rather than radius is proportional to the value.
type Sqrt struct {
	linear *Linear
}

func sqrtSigned(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// NewSqrt builds a square-root scale from [d0, d1] to [r0, r1].
func NewSqrt(d0, d1, r0, r1 float64) *Sqrt {
	return &Sqrt{linear: NewLinear(sqrtSigned(d0), sqrtSigned(d1), r0, r1)}
}

// Scale maps v into the range.
func (s *Sqrt) Scale(v float64) float64 {
	return s.linear.Scale(sqrtSigned(v))
}
