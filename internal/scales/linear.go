package scales

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale from [d0, d1] to [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the input bounds.
func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output bounds.
func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Scale maps v into the range. A degenerate domain maps everything to the
// middle of the range.
func (l *Linear) Scale(v float64) float64 {
	return l.r0 + normalize(l.d0, l.d1, v)*(l.r1-l.r0)
}

// Invert maps a range value back into the domain.
func (l *Linear) Invert(px float64) float64 {
	return l.d0 + normalize(l.r0, l.r1, px)*(l.d1-l.d0)
}

func normalize(a, b, v float64) float64 {
	if b-a == 0 {
		return 0.5
	}
	return (v - a) / (b - a)
}

// Nice extends the domain outwards to round tick values.
func (l *Linear) Nice(count int) *Linear {
	start, stop := l.d0, l.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for iter := 0; iter < 10; iter++ {
		step := TickIncrement(start, stop, count)
		if step == 0 || step == prestep {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}
	return &Linear{d0: start, d1: stop, r0: l.r0, r1: l.r1}
}

// Ticks returns roughly count round values inside the domain.
func (l *Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

// TickFormat returns a formatter with just enough decimals for the tick step
// and thousands separators.
func (l *Linear) TickFormat(count int) func(float64) string {
	inc := TickIncrement(math.Min(l.d0, l.d1), math.Max(l.d0, l.d1), count)
	step := inc
	if inc < 0 {
		step = 1 / -inc
	}
	precision := 0
	if step > 0 {
		precision = int(math.Max(0, -math.Floor(math.Log10(step))))
	}
	p := message.NewPrinter(language.English)
	format := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		return p.Sprintf(format, v)
	}
}

// tickSpec picks a 1, 2 or 5 times power-of-ten step and the integer
// multipliers of the first and last tick. A negative inc is the reciprocal of
// a fractional step.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// TickIncrement returns the tick step for [start, stop], negative when the
// step is the reciprocal of an integer.
func TickIncrement(start, stop float64, count int) float64 {
	if !(count > 0) || start == stop {
		return 0
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	return inc
}

// Ticks returns roughly count round values between start and stop
// inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if !(count > 0) || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}
