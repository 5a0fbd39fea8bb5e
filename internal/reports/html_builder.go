package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"tvenergy/internal/charts"
	"tvenergy/internal/config"
	"tvenergy/internal/logger"
)

// DashboardTitle is the page title of the dashboard and its snapshots.
const DashboardTitle = "TV Energy Dashboard"

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	log            *logger.Logger
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	// raw HTML in narratives is dropped, not rendered
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
		log:            logger.Component("reports"),
	}
}

// ChartSection is one chart block of the page
type ChartSection struct {
	Name    string
	Heading string
	Div     template.HTML
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	GeneratedAt string
	Version     string
	StylesPath  string
	ScriptPath  string
	Static      bool
	Width       int
	Narrative   template.HTML
	Charts      []ChartSection
}

// PageOptions controls how a dashboard page references its assets.
// Static pages are snapshots that never call back into the server.
type PageOptions struct {
	Static      bool
	AssetPrefix string
	Width       float64
	GeneratedAt time.Time
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildDashboard assembles the page from rendered chart snippets and an
// optional Markdown narrative
func (h *HTMLBuilder) BuildDashboard(snippets []charts.ChartSnippet, narrative string, opts PageOptions) (string, error) {
	data := TemplateData{
		Title:       DashboardTitle,
		GeneratedAt: opts.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
		StylesPath:  opts.AssetPrefix + StylesFile,
		ScriptPath:  opts.AssetPrefix + ScriptFile,
		Static:      opts.Static,
		Width:       int(opts.Width),
		Charts:      make([]ChartSection, 0, len(snippets)),
	}

	if narrative != "" {
		narrativeHTML, err := h.ConvertMarkdownToHTML(narrative)
		if err != nil {
			return "", err
		}
		data.Narrative = template.HTML(narrativeHTML)
	}

	for _, s := range snippets {
		data.Charts = append(data.Charts, ChartSection{
			Name:    s.Name,
			Heading: s.Heading,
			Div:     template.HTML(s.Div),
		})
	}

	page, err := h.executeTemplate(data)
	if err != nil {
		return "", err
	}
	h.log.Debug("Dashboard page built", map[string]interface{}{
		"bytes":  len(page),
		"charts": len(data.Charts),
		"static": opts.Static,
	})
	return page, nil
}

// executeTemplate executes the HTML template with the provided data
func (h *HTMLBuilder) executeTemplate(data TemplateData) (string, error) {
	htmlTemplate, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load HTML template: %w", err)
	}

	tmpl, err := template.New("dashboard").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
