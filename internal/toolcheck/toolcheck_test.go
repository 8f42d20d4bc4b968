package toolcheck

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/runner/runnertest"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"ruby 3.3.0p0 (2023-12-25 revision 5124f9ac75) [x86_64-linux]", "3.3.0"},
		{"Rails 7.1.3", "7.1.3"},
		{"Bundler version 2.5.3", "2.5.3"},
		{"git version 2.43.0", "2.43.0"},
		{"Rails 4.2", "4.2.0"},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.output)
		if err != nil {
			t.Errorf("ParseVersion(%q) error: %v", tt.output, err)
			continue
		}
		if v.String() != tt.want {
			t.Errorf("ParseVersion(%q) = %s, want %s", tt.output, v, tt.want)
		}
	}

	if _, err := ParseVersion("command not found"); err == nil {
		t.Error("expected error for output without a version")
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		want       bool
		wantErr    bool
	}{
		{"7.1.3", ">= 4.0", true, false},
		{"3.2.22", ">= 4.0", false, false},
		{"v7.0.0", "~7.0", true, false},
		{"7.1.3", "", true, false},
		{"7.1.3", "not a constraint", false, true},
		{"banana", ">= 4.0", false, true},
	}
	for _, tt := range tests {
		got, err := Satisfies(tt.version, tt.constraint)
		if (err != nil) != tt.wantErr {
			t.Errorf("Satisfies(%q, %q) error = %v, wantErr %v", tt.version, tt.constraint, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.version, tt.constraint, got, tt.want)
		}
	}
}

func TestCheckAndReport(t *testing.T) {
	rec := runnertest.New()
	rec.Responses["ruby --version"] = runner.Result{Stdout: "ruby 3.3.0p0\n"}
	rec.Responses["rails --version"] = runner.Result{Stdout: "Rails 3.2.22\n"}
	rec.Responses["bundle --version"] = runner.Result{Stdout: "Bundler version 2.5.3\n"}

	c := &Checker{
		Runner: rec,
		LookPath: func(name string) (string, error) {
			if name == "git" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		},
	}

	statuses := c.Check(context.Background())
	if len(statuses) != len(Tools) {
		t.Fatalf("got %d statuses, want %d", len(statuses), len(Tools))
	}
	if statuses[0].Version != "3.3.0" || statuses[0].Path != "/usr/bin/ruby" {
		t.Errorf("ruby status = %+v", statuses[0])
	}
	if statuses[3].Found() {
		t.Errorf("git should be missing: %+v", statuses[3])
	}

	var out bytes.Buffer
	problems := Report(&out, statuses, ">= 4.0")
	if problems != 2 {
		t.Errorf("problems = %d, want 2\n%s", problems, out.String())
	}
	report := out.String()
	for _, want := range []string{
		"[ OK ] ruby 3.3.0 found at /usr/bin/ruby",
		"[FAIL] rails 3.2.22 does not satisfy recipe constraint \">= 4.0\"",
		"[MISS] git",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	// git was never executed.
	for _, line := range rec.Lines() {
		if strings.HasPrefix(line, "git") {
			t.Errorf("unexpected git invocation %q", line)
		}
	}
}

func TestReportAllGood(t *testing.T) {
	statuses := []Status{{Tool: "rails", Version: "7.1.3", Path: "/bin/rails"}}
	var out bytes.Buffer
	if n := Report(&out, statuses, ">= 4.0"); n != 0 {
		t.Errorf("problems = %d\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "All 1 tools found") {
		t.Errorf("report:\n%s", out.String())
	}
}
