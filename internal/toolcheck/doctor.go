// Package toolcheck verifies that the external tools railstart shells out to
// (ruby, rails, bundle, git) are installed, and that the installed Rails
// satisfies the recipe's version constraint.
package toolcheck

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/railstart-labs/railstart/internal/runner"
)

// Tool is an external command railstart depends on.
type Tool struct {
	Name        string
	VersionArgs []string
}

// Tools lists the external commands, in report order.
var Tools = []Tool{
	{Name: "ruby", VersionArgs: []string{"--version"}},
	{Name: "rails", VersionArgs: []string{"--version"}},
	{Name: "bundle", VersionArgs: []string{"--version"}},
	{Name: "git", VersionArgs: []string{"--version"}},
}

// Status is the outcome of checking one tool.
type Status struct {
	Tool    string
	Path    string
	Version string
	Err     error
}

// Found reports whether the tool is on PATH and answered --version.
func (s Status) Found() bool {
	return s.Err == nil
}

// Checker runs the checks. LookPath defaults to exec.LookPath.
type Checker struct {
	Runner   runner.Runner
	LookPath func(string) (string, error)
}

// Check inspects every tool in Tools.
func (c *Checker) Check(ctx context.Context) []Status {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	statuses := make([]Status, 0, len(Tools))
	for _, t := range Tools {
		s := Status{Tool: t.Name}

		path, err := lookPath(t.Name)
		if err != nil {
			s.Err = fmt.Errorf("%s not found on PATH", t.Name)
			statuses = append(statuses, s)
			continue
		}
		s.Path = path

		res, err := c.Runner.Run(ctx, t.Name, t.VersionArgs, runner.Opts{})
		if err := runner.Check(res, err, t.Name, t.VersionArgs); err != nil {
			s.Err = err
			statuses = append(statuses, s)
			continue
		}

		v, err := ParseVersion(res.Stdout + res.Stderr)
		if err != nil {
			s.Err = err
		} else {
			s.Version = v.String()
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// Report prints statuses in the [ OK ]/[MISS] layout and checks the rails
// version against railsConstraint. It returns the number of problems found.
func Report(w io.Writer, statuses []Status, railsConstraint string) int {
	fmt.Fprintln(w, "Tool check:")

	problems := 0
	for _, s := range statuses {
		if !s.Found() {
			fmt.Fprintf(w, "  [MISS] %s: %v\n", s.Tool, s.Err)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s %s found at %s\n", s.Tool, s.Version, s.Path)

		if s.Tool != "rails" || railsConstraint == "" {
			continue
		}
		ok, err := Satisfies(s.Version, railsConstraint)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [WARN] cannot compare rails %s with %q: %v\n", s.Version, railsConstraint, err)
			problems++
		case !ok:
			fmt.Fprintf(w, "  [FAIL] rails %s does not satisfy recipe constraint %q\n", s.Version, railsConstraint)
			problems++
		default:
			fmt.Fprintf(w, "  [ OK ] rails %s satisfies %q\n", s.Version, railsConstraint)
		}
	}

	if problems > 0 {
		fmt.Fprintf(w, "\n  %d problem(s) found.\n", problems)
	} else {
		fmt.Fprintf(w, "  [ OK ] All %d tools found\n", len(statuses))
	}
	return problems
}
