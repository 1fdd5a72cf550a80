package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/idcashier/backend/internal/domain/printing"
	"github.com/idcashier/backend/internal/domain/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateEngine renders receipts to HTML with html/template
type TemplateEngine struct {
	templates *template.Template
	location  *time.Location
}

// NewTemplateEngine parses the embedded receipt templates.
// Timestamps are printed in loc.
func NewTemplateEngine(loc *time.Location) (*TemplateEngine, error) {
	if loc == nil {
		loc = time.UTC
	}
	e := &TemplateEngine{location: loc}

	funcs := template.FuncMap{
		"formatDateTime": e.formatDateTime,
		"truncate":       truncate,
		"paperWidth":     paperWidth,
	}
	tmpl, err := template.New("receipts").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt templates: %w", err)
	}
	e.templates = tmpl
	return e, nil
}

// RenderReceipt renders the receipt with its template, falling back to classic
func (e *TemplateEngine) RenderReceipt(r *printing.Receipt) (string, error) {
	tmpl := r.Template
	if !tmpl.IsValid() {
		tmpl = settings.TemplateClassic
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "receipt_"+string(tmpl)+".html", r); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to render receipt template", err)
	}
	return buf.String(), nil
}

func (e *TemplateEngine) formatDateTime(t time.Time) string {
	return t.In(e.location).Format("02/01/2006 15:04")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func paperWidth(p printing.PaperSize) string {
	w, _ := p.Dimensions()
	if p.IsReceipt() {
		return fmt.Sprintf("%dmm", w-6)
	}
	return "100%"
}
