package scales

import "math"

// Band maps categories to evenly spaced bands across a pixel range.
// Padding is applied both between bands and at the outer edges, and the
// bands are centred in the range.
type Band struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over the ascending range [r0, r1]. Duplicate
// categories keep their first position.
func NewBand(domain []string, r0, r1, padding float64) *Band {
	b := &Band{index: make(map[string]int, len(domain))}
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}

	padding = math.Max(0, math.Min(1, padding))
	n := float64(len(b.domain))
	b.step = (r1 - r0) / math.Max(1, n-padding+padding*2)
	b.start = r0 + (r1-r0-b.step*(n-padding))*0.5
	b.bandwidth = b.step * (1 - padding)
	return b
}

// Position returns the left edge of the band for v.
func (b *Band) Position(v string) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the midpoint of the band for v.
func (b *Band) Center(v string) (float64, bool) {
	p, ok := b.Position(v)
	return p + b.bandwidth/2, ok
}

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Domain returns the categories in band order.
func (b *Band) Domain() []string {
	return append([]string(nil), b.domain...)
}
