package recipe

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed recipe.yaml
var defaultRecipe []byte

// DefaultBytes returns the raw embedded default recipe.
func DefaultBytes() []byte {
	out := make([]byte, len(defaultRecipe))
	copy(out, defaultRecipe)
	return out
}

// Default parses the embedded default recipe.
func Default() (*Recipe, error) {
	return Parse(defaultRecipe, "embedded recipe.yaml")
}

// Parse unmarshals recipe YAML. source names the data in error messages.
func Parse(data []byte, source string) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", source, err)
	}
	return &r, nil
}

// ParseFile reads and parses a recipe file without schema validation.
func ParseFile(path string) (*Recipe, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Load returns the embedded default recipe when path is empty. Otherwise it
// validates the file against the recipe schema and parses it.
func Load(path string) (*Recipe, error) {
	if path == "" {
		return Default()
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating recipe %s: %w", path, err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				msgs = append(msgs, issue.Path+": "+issue.Message)
			} else {
				msgs = append(msgs, issue.Message)
			}
		}
		return nil, fmt.Errorf("recipe %s is invalid:\n  %s", path, strings.Join(msgs, "\n  "))
	}

	return Parse(data, path)
}

// Marshal renders a recipe back to YAML.
func Marshal(r *Recipe) ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling recipe: %w", err)
	}
	return out, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
