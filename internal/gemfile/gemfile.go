// Package gemfile appends gem declarations and gem groups to a project's
// Gemfile. It does not resolve or validate gems; Bundler reports problems
// when the Gemfile is installed.
package gemfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/railstart-labs/railstart/internal/recipe"
)

// FileName is the manifest consumed by Bundler.
const FileName = "Gemfile"

// Editor edits the Gemfile of one project directory.
type Editor struct {
	path string
}

// New returns an Editor for <projectDir>/Gemfile.
func New(projectDir string) *Editor {
	return &Editor{path: filepath.Join(projectDir, FileName)}
}

// AddGem appends a top-level gem declaration. It returns false without
// touching the file when the gem is already declared.
func (e *Editor) AddGem(g recipe.Gem) (bool, error) {
	content, err := e.read()
	if err != nil {
		return false, err
	}
	if declaredGems(content)[g.Name] {
		return false, nil
	}

	var b strings.Builder
	b.WriteString("\n")
	if g.Comment != "" {
		b.WriteString("# " + g.Comment + "\n")
	}
	b.WriteString(gemLine(g) + "\n")

	return true, e.append(content, b.String())
}

// AddGroup appends a group block scoped to envs. Gems already declared are
// left out; when none remain the file is not touched and the result is nil.
func (e *Editor) AddGroup(envs []string, gems []recipe.Gem) ([]recipe.Gem, error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("gem group needs at least one environment")
	}

	content, err := e.read()
	if err != nil {
		return nil, err
	}

	present := declaredGems(content)
	var added []recipe.Gem
	for _, g := range gems {
		if !present[g.Name] {
			added = append(added, g)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	symbols := make([]string, len(envs))
	for i, env := range envs {
		symbols[i] = ":" + env
	}

	var b strings.Builder
	b.WriteString("\ngroup " + strings.Join(symbols, ", ") + " do\n")
	for _, g := range added {
		if g.Comment != "" {
			b.WriteString("  # " + g.Comment + "\n")
		}
		b.WriteString("  " + gemLine(g) + "\n")
	}
	b.WriteString("end\n")

	if err := e.append(content, b.String()); err != nil {
		return nil, err
	}
	return added, nil
}

func gemLine(g recipe.Gem) string {
	line := fmt.Sprintf("gem %q", g.Name)
	if g.Version != "" {
		line += fmt.Sprintf(", %q", g.Version)
	}
	return line
}

var gemDeclaration = regexp.MustCompile(`(?m)^\s*gem\s+["']([^"']+)["']`)

// declaredGems returns the names of every gem declared in content, at top
// level or inside a group. Commented-out lines do not count.
func declaredGems(content string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range gemDeclaration.FindAllStringSubmatch(content, -1) {
		names[m[1]] = true
	}
	return names
}

func (e *Editor) read() (string, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", FileName, err)
	}
	return string(data), nil
}

func (e *Editor) append(content, addition string) error {
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		addition = "\n" + addition
	}
	if err := os.WriteFile(e.path, []byte(content+addition), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}
