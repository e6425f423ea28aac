package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

func TestTemplateEngine_RendersAgainstSuppliedFields(t *testing.T) {
	engine := NewTemplateEngine()

	out, err := engine.Render("greeting", "hello {{ .Name }}", struct{ Name string }{Name: "torrust"})
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if out != "hello torrust" {
		t.Fatalf("expected %q, got %q", "hello torrust", out)
	}
}

func TestTemplateEngine_FailsOnParseError(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.Render("broken", "{{ .Name", nil)
	if err == nil {
		t.Fatal("expected a parse error for an unterminated action")
	}
	var parseErr *entities.TemplateParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *entities.TemplateParseError, got %T", err)
	}
}

func TestTemplateEngine_FailsOnMissingMapKeyInsteadOfSubstitutingEmpty(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.Render("missing-key", "value: {{ .Missing }}", map[string]any{"Present": "x"})
	if err == nil {
		t.Fatal("expected a render error for a map key the context does not supply")
	}
	var renderErr *entities.TemplateRenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *entities.TemplateRenderError, got %T", err)
	}
}

func TestTemplateEngine_FailsOnMissingStructField(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.Render("missing-field", "value: {{ .DoesNotExist }}", struct{ Name string }{Name: "x"})
	if err == nil {
		t.Fatal("expected a render error referencing a nonexistent struct field")
	}
	if !strings.Contains(err.Error(), "missing-field") {
		t.Fatalf("expected error to name the template, got %v", err)
	}
}
