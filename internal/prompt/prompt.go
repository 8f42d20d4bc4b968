// Package prompt asks the operator yes/no and free-text questions. Console
// reads answers line by line from an io.Reader; Scripted answers from a
// key/value map (an answers file) and falls through to another Prompter for
// keys it does not know; Defaults answers every question with its default.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Question is one entry of the fixed questionnaire.
type Question struct {
	Key     string // stable identifier used by answers files
	Text    string // what the operator sees
	Default bool   // yes/no default, used by Defaults
}

// Prompter answers questions.
type Prompter interface {
	// Yes asks a yes/no question.
	Yes(q Question) (bool, error)
	// Ask asks a free-text question and returns def when the answer is blank.
	Ask(q Question, def string) (string, error)
}

// Console prompts on w and reads answers from r.
type Console struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewConsole returns a Console prompter.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{reader: bufio.NewReader(r), w: w}
}

// Yes prints the question and returns true for answers starting with y or Y.
func (c *Console) Yes(q Question) (bool, error) {
	fmt.Fprintf(c.w, "%s (y/n) ", q.Text)
	line, err := c.readLine()
	if err != nil {
		return false, fmt.Errorf("reading answer to %q: %w", q.Key, err)
	}
	return ParseYes(line), nil
}

// Ask prints the question and returns the trimmed answer, or def when blank.
func (c *Console) Ask(q Question, def string) (string, error) {
	fmt.Fprintf(c.w, "%s ", q.Text)
	line, err := c.readLine()
	if err != nil {
		return "", fmt.Errorf("reading answer to %q: %w", q.Key, err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// readLine returns the next trimmed line. A closed input yields a blank answer.
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.w)
	}
	return strings.TrimSpace(line), nil
}

// Scripted answers from a fixed map and defers unknown keys to Next.
type Scripted struct {
	Answers map[string]string
	Next    Prompter
	w       io.Writer
}

// NewScripted returns a Scripted prompter that echoes each scripted answer to w.
// A nil next answers unknown keys with their defaults.
func NewScripted(answers map[string]string, next Prompter, w io.Writer) *Scripted {
	if next == nil {
		next = Defaults{}
	}
	if w == nil {
		w = io.Discard
	}
	return &Scripted{Answers: answers, Next: next, w: w}
}

// Yes answers from the map when the key is present.
func (s *Scripted) Yes(q Question) (bool, error) {
	answer, ok := s.Answers[q.Key]
	if !ok {
		return s.Next.Yes(q)
	}
	fmt.Fprintf(s.w, "%s (y/n) %s\n", q.Text, answer)
	return ParseYes(answer), nil
}

// Ask answers from the map when the key is present; blank still means def.
func (s *Scripted) Ask(q Question, def string) (string, error) {
	answer, ok := s.Answers[q.Key]
	if !ok {
		return s.Next.Ask(q, def)
	}
	fmt.Fprintf(s.w, "%s %s\n", q.Text, answer)
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Defaults answers every question without reading input.
type Defaults struct{}

// Yes returns the question's default.
func (Defaults) Yes(q Question) (bool, error) { return q.Default, nil }

// Ask returns def.
func (Defaults) Ask(_ Question, def string) (string, error) { return def, nil }

// ParseYes reports whether s reads as an affirmative answer.
func ParseYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || strings.HasPrefix(s, "y")
}

// LoadAnswers reads a YAML answers file mapping question keys to answers.
// Scalars of any type are accepted and converted to text.
func LoadAnswers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}

	answers := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			answers[k] = ""
		case bool:
			if val {
				answers[k] = "yes"
			} else {
				answers[k] = "no"
			}
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("answers file %s: %q must be a scalar", path, k)
		default:
			answers[k] = fmt.Sprint(val)
		}
	}
	return answers, nil
}
