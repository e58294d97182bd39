package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/inventra/frontend/internal/infrastructure/printing"
)

//go:embed templates
var templateFS embed.FS

// PageRenderer holds the parsed page templates. Each page is parsed
// together with the shared layout so {{define "content"}} blocks do not
// collide across pages.
type PageRenderer struct {
	pages map[string]*template.Template
}

// NewPageRenderer parses the embedded templates, sharing the receipt
// engine's formatting helpers.
func NewPageRenderer(engine *printing.TemplateEngine) (*PageRenderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("reading page templates: %w", err)
	}

	r := &PageRenderer{pages: make(map[string]*template.Template, len(entries))}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".gohtml")
		tmpl, err := template.New("layout.gohtml").
			Funcs(engine.FuncMap()).
			ParseFS(templateFS, "templates/layout.gohtml", "templates/pages/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("parsing page %q: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the named page into w.
func (r *PageRenderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.gohtml", data)
}
