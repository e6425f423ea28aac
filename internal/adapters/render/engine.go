// Package render implements the template engine and the three
// domain-specific renderers (infra provisioner, config engine, container
// runtime) that materialize build/<env>/ artifacts on disk.
package render

import (
	"bytes"
	"text/template"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// TemplateEngine implements usecases.TemplateEngine over text/template.
// Option("missingkey=error") makes a reference to a field the context
// doesn't supply a render-time failure instead of silently substituting
// an empty string, per the "lenient substitution is forbidden" contract.
type TemplateEngine struct{}

var _ usecases.TemplateEngine = (*TemplateEngine)(nil)

// NewTemplateEngine returns a ready-to-use TemplateEngine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{}
}

// Render parses body, renders it against data, and returns the result.
func (e *TemplateEngine) Render(name string, body string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", &entities.TemplateParseError{Template: name, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &entities.TemplateRenderError{Template: name, Err: err}
	}
	return buf.String(), nil
}
