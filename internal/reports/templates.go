package reports

import (
	"embed"
	"fmt"
)

// Static files referenced by every dashboard page.
const (
	StylesFile = "styles.css"
	ScriptFile = "runtime.js"
)

//go:embed templates
var templateFS embed.FS

// TemplateLoader handles loading HTML templates, CSS styles and the browser
// runtime
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

func (t *TemplateLoader) load(name string) (string, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}
	return string(content), nil
}

// LoadHTMLTemplate loads the dashboard page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	return t.load("dashboard.html")
}

// LoadCSSStyles loads the dashboard stylesheet
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	return t.load(StylesFile)
}

// LoadRuntimeScript loads the script driving hover, legend, focus and resize
func (t *TemplateLoader) LoadRuntimeScript() (string, error) {
	return t.load(ScriptFile)
}

// Assets returns the static files keyed by file name.
func (t *TemplateLoader) Assets() (map[string][]byte, error) {
	assets := make(map[string][]byte, 2)
	for _, name := range []string{StylesFile, ScriptFile} {
		content, err := t.load(name)
		if err != nil {
			return nil, err
		}
		assets[name] = []byte(content)
	}
	return assets, nil
}
