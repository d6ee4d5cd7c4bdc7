package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/cookbook/internal/interfaces"
)

const (
	layoutTemplate = "base"
	dateLayout     = "02 Jan 2006"
)

// shared holds the layout and partials parsed into every page.
var shared = []string{"templates/base.html", "templates/recipe_form.html"}

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders embedded pages inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger interfaces.Logger
}

var _ interfaces.Renderer = (*Renderer)(nil)

// NewRenderer parses every page once. A page is any template file that is
// not part of the shared set; its view name is the file name without ".html".
func NewRenderer(logger interfaces.Logger) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	isShared := make(map[string]bool, len(shared))
	for _, s := range shared {
		isShared[s] = true
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		if isShared[file] {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		patterns := append([]string{file}, shared...)
		tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}
		pages[name] = tmpl
		logger.Debug("Parsed view", "view", name)
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"lines":      Lines,
	}
}

// Render executes view into a buffer and only writes the response once the
// whole page rendered.
func (r *Renderer) Render(w http.ResponseWriter, status int, view string, data map[string]interface{}) error {
	tmpl, ok := r.pages[view]
	if !ok {
		return fmt.Errorf("view %q does not exist", view)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, layoutTemplate, data); err != nil {
		r.logger.Error("Failed to render view", "view", view, "error", err)
		return fmt.Errorf("failed to render view %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Views lists the names Render accepts.
func (r *Renderer) Views() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}

// FormatDate renders t as a calendar date. The zero time renders empty,
// which covers recipes stored before added_on was recorded.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

// Lines splits multi-line form text into its non-blank lines.
func Lines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
