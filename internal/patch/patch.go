package patch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrAnchorNotFound is returned when the text an edit hangs off is missing.
var ErrAnchorNotFound = errors.New("anchor not found")

// Sentinels that Rails generators leave in application and environment files.
// Environment files open with `Rails.application.configure do` since Rails 4.1
// and with `<App>::Application.configure do` before that.
var (
	applicationSentinel = regexp.MustCompile(`class [A-Za-z:]*Application < Rails::Application[ \t]*\n`)
	environmentSentinel = regexp.MustCompile(`(?m)^[A-Za-z:.]*\.configure do[ \t]*\n`)
)

// Patcher edits files below a project root.
type Patcher struct {
	root string
}

// New returns a Patcher rooted at dir.
func New(dir string) *Patcher {
	return &Patcher{root: dir}
}

// Path resolves a project-relative path.
func (p *Patcher) Path(rel string) string {
	return filepath.Join(p.root, filepath.FromSlash(rel))
}

// WriteFile creates or replaces rel with content, creating parent directories.
func (p *Patcher) WriteFile(rel, content string) error {
	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// RemoveFile deletes rel. A missing file is not an error.
func (p *Patcher) RemoveFile(rel string) error {
	if err := os.Remove(p.Path(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", rel, err)
	}
	return nil
}

// InjectAfter inserts text immediately after the first occurrence of anchor.
// If the file already contains text the call is a no-op.
func (p *Patcher) InjectAfter(rel, anchor, text string) error {
	content, err := p.read(rel)
	if err != nil {
		return err
	}
	if strings.Contains(content, text) {
		return nil
	}

	idx := strings.Index(content, anchor)
	if idx < 0 {
		return fmt.Errorf("%s: %q: %w", rel, anchor, ErrAnchorNotFound)
	}
	at := idx + len(anchor)
	return p.write(rel, content[:at]+text+content[at:])
}

// InjectAfterMatch inserts text immediately after the first match of re.
// If the file already contains text the call is a no-op.
func (p *Patcher) InjectAfterMatch(rel string, re *regexp.Regexp, text string) error {
	content, err := p.read(rel)
	if err != nil {
		return err
	}
	if strings.Contains(content, text) {
		return nil
	}

	loc := re.FindStringIndex(content)
	if loc == nil {
		return fmt.Errorf("%s: /%s/: %w", rel, re.String(), ErrAnchorNotFound)
	}
	at := loc[1]
	return p.write(rel, content[:at]+text+content[at:])
}

// Gsub replaces every match of re in rel with repl (regexp.Expand syntax)
// and returns the number of matches.
func (p *Patcher) Gsub(rel string, re *regexp.Regexp, repl string) (int, error) {
	content, err := p.read(rel)
	if err != nil {
		return 0, err
	}

	n := len(re.FindAllStringIndex(content, -1))
	if n == 0 {
		return 0, fmt.Errorf("%s: /%s/: %w", rel, re.String(), ErrAnchorNotFound)
	}
	return n, p.write(rel, re.ReplaceAllString(content, repl))
}

// ReplaceAll replaces every literal occurrence of old and returns the count.
func (p *Patcher) ReplaceAll(rel, old, replacement string) (int, error) {
	content, err := p.read(rel)
	if err != nil {
		return 0, err
	}

	n := strings.Count(content, old)
	if n == 0 {
		return 0, fmt.Errorf("%s: %q: %w", rel, old, ErrAnchorNotFound)
	}
	return n, p.write(rel, strings.ReplaceAll(content, old, replacement))
}

// DeleteLines removes every line matching re and returns how many went.
func (p *Patcher) DeleteLines(rel string, re *regexp.Regexp) (int, error) {
	content, err := p.read(rel)
	if err != nil {
		return 0, err
	}

	lines := strings.SplitAfter(content, "\n")
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if line != "" && re.MatchString(strings.TrimRight(line, "\n")) {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, p.write(rel, strings.Join(kept, ""))
}

// Rename moves from to to, both project-relative.
func (p *Patcher) Rename(from, to string) error {
	if _, err := os.Stat(p.Path(from)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", from, ErrAnchorNotFound)
		}
		return fmt.Errorf("checking %s: %w", from, err)
	}
	if err := os.Rename(p.Path(from), p.Path(to)); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", from, to, err)
	}
	return nil
}

// Application injects data into config/application.rb when env is empty,
// otherwise into config/environments/<env>.rb, re-indented to fit the
// surrounding block.
func (p *Patcher) Application(data, env string) error {
	if env == "" {
		return p.InjectAfterMatch("config/application.rb", applicationSentinel, Indent(data, 4))
	}
	return p.InjectAfterMatch("config/environments/"+env+".rb", environmentSentinel, Indent(data, 2))
}

// Indent strips surrounding blank lines and the common leading indentation
// from data, then prefixes every non-blank line with n spaces.
func Indent(data string, n int) string {
	lines := strings.Split(strings.Trim(data, "\n"), "\n")

	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lead := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || lead < common {
			common = lead
		}
	}
	if common < 0 {
		common = 0
	}

	pad := strings.Repeat(" ", n)
	var b strings.Builder
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(pad + strings.TrimRight(l[common:], " \t") + "\n")
	}
	return b.String()
}

func (p *Patcher) read(rel string) (string, error) {
	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

func (p *Patcher) write(rel, content string) error {
	if err := os.WriteFile(p.Path(rel), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
