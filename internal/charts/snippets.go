package charts

import (
	"context"
	"fmt"
	"html"
)

// ChartSnippet is one rendered chart ready to embed in a page.
// Div holds the container element with the SVG inside; HTML wraps it with
// its heading.
type ChartSnippet struct {
	ID      string
	Name    string
	Heading string
	SVG     string
	Div     string
	HTML    string
}

var headings = map[string]string{
	"bar":     "Power Consumption by Screen Technology",
	"donut":   "Energy Consumption by Screen Technology",
	"line":    "Electricity Spot Prices",
	"scatter": "Energy Consumption vs Star Rating",
}

// Heading returns the section heading shown above the named chart.
func Heading(name string) string {
	if h, ok := headings[name]; ok {
		return h
	}
	return name
}

// Snippet renders the named chart and wraps it for embedding.
func (cg *ChartGenerator) Snippet(ctx context.Context, name string, width float64) (ChartSnippet, error) {
	spec, err := cg.Spec(name)
	if err != nil {
		return ChartSnippet{}, err
	}
	s, err := cg.Render(ctx, name, width)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render %s chart: %w", name, err)
	}

	svg := s.SVG()
	heading := Heading(name)
	div := fmt.Sprintf(`<div id="%s" class="chart" data-chart="%s">%s</div>`, spec.Container, name, svg)
	completeHTML := fmt.Sprintf(`<section class="chart-container">
	<h2>%s</h2>
	%s
</section>`, html.EscapeString(heading), div)

	return ChartSnippet{
		ID:      spec.Container,
		Name:    name,
		Heading: heading,
		SVG:     svg,
		Div:     div,
		HTML:    completeHTML,
	}, nil
}

// Snippets renders every chart in page order.
func (cg *ChartGenerator) Snippets(ctx context.Context, width float64) ([]ChartSnippet, error) {
	snippets := make([]ChartSnippet, 0, len(Names))
	for _, name := range Names {
		snippet, err := cg.Snippet(ctx, name, width)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}
