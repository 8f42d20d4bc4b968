package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"text/template"

	"github.com/railstart-labs/railstart/internal/patch"
)

//go:embed templates/*.tmpl
var scaffoldFS embed.FS

// Template sets, emitted at different points of a run.
const (
	SetBase = "base"
	SetEnv  = "env"
	SetPool = "pool"
)

// File maps an embedded template to its project-relative destination.
type File struct {
	Template string
	Path     string
}

var sets = map[string][]File{
	SetBase: {
		{Template: "staging.rb.tmpl", Path: "config/environments/staging.rb"},
		{Template: "Procfile.tmpl", Path: "Procfile"},
		{Template: "puma.rb.tmpl", Path: "config/puma.rb"},
		{Template: "database.example.yml.tmpl", Path: "config/database.example.yml"},
	},
	SetEnv: {
		{Template: "env.tmpl", Path: ".env"},
	},
	SetPool: {
		{Template: "database_pool.rb.tmpl", Path: "config/initializers/database_pool.rb"},
		{Template: "sidekiq.rb.tmpl", Path: "config/initializers/sidekiq.rb"},
	},
}

// SessionStore is written on its own, after the generated initializer has
// been removed.
var SessionStore = File{Template: "session_store.rb.tmpl", Path: "config/initializers/session_store.rb"}

// Data holds all template variables available to scaffold templates.
type Data struct {
	AppName string // e.g., "blog"
	Port    string // e.g., "5000"
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Files []string
}

// Files returns the destinations of a template set, in write order.
func Files(set string) ([]File, error) {
	files, ok := sets[set]
	if !ok {
		return nil, fmt.Errorf("template set %q not found", set)
	}
	out := make([]File, len(files))
	copy(out, files)
	return out, nil
}

// Render executes a single embedded template.
func Render(name string, data *Data) (string, error) {
	tmplBytes, err := fs.ReadFile(scaffoldFS, path.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// WriteFile renders f and writes it into the project, replacing any existing file.
func WriteFile(p *patch.Patcher, f File, data *Data) error {
	content, err := Render(f.Template, data)
	if err != nil {
		return err
	}
	return p.WriteFile(f.Path, content)
}

// Generate renders every file of a template set into the project.
func Generate(set string, data *Data, p *patch.Patcher) (*Result, error) {
	files, err := Files(set)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, f := range files {
		if err := WriteFile(p, f, data); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, f.Path)
	}
	return result, nil
}
