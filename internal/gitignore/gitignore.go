// Package gitignore appends the recipe's ignore-list entries to a project's
// .gitignore without duplicating lines that are already present.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the ignore-list file git reads.
const FileName = ".gitignore"

// Append adds every entry not already present (compared after trimming
// whitespace) to <repoRoot>/.gitignore as one block separated from existing
// content by a blank line. The file is created when missing. It returns the
// entries that were written.
func Append(repoRoot string, entries []string) ([]string, error) {
	path := filepath.Join(repoRoot, FileName)

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || present[e] {
			continue
		}
		present[e] = true
		added = append(added, e)
	}
	if len(added) == 0 {
		return nil, nil
	}

	block := strings.Join(added, "\n") + "\n"
	switch {
	case len(content) == 0:
	case strings.HasSuffix(string(content), "\n"):
		block = "\n" + block
	default:
		block = "\n\n" + block
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s for append: %w", FileName, err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return nil, fmt.Errorf("writing to %s: %w", FileName, err)
	}
	return added, nil
}
