package handler

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yatube-dev/yatube/internal/markdown"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
)

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func mediaURL(rel string) string {
	return "/media/" + strings.TrimPrefix(rel, "/")
}

// LoadTemplates parses every page in dir together with the base layout and
// the shared partials. Pages are keyed by file name.
func LoadTemplates(dir string, tp *markdown.TextProcessor) (map[string]*template.Template, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("can't read templates dir: %w", err)
	}

	funcs := template.FuncMap{
		"sub":      sub,
		"add":      add,
		"dict":     dict,
		"media":    mediaURL,
		"markdown": tp.Render,
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		name := f.Name()
		if filepath.Ext(name) != ".html" || name == baseTemplate || name == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFiles(
			path.Join(dir, baseTemplate),
			path.Join(dir, name),
			path.Join(dir, partialsTemplate),
		)
		if err != nil {
			return nil, fmt.Errorf("can't parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}
