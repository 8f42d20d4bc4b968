package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railstart-labs/railstart/internal/apply"
	"github.com/railstart-labs/railstart/internal/prompt"
	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/runner/runnertest"
	"github.com/railstart-labs/railstart/internal/toolcheck"
	"github.com/spf13/cobra"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateAppName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"blog", false},
		{"Blog", false},
		{"my_app", false},
		{"my-app2", false},
		{"", true},
		{"1blog", true},
		{"../blog", true},
		{"my app", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAppName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAppName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, "starter", &apply.Summary{
		Files:    []string{"Procfile"},
		Patches:  []string{"application controller", "production cache store"},
		Warnings: []string{"skipped app/models/user.rb attr_accessible"},
	})
	out := buf.String()

	for _, want := range []string{
		"Recipe starter summary:",
		"  1 file written\n",
		"    - Procfile\n",
		"  2 patches applied\n",
		"  1 warning\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "commands run") {
		t.Errorf("empty sections should be omitted:\n%s", out)
	}
}

func TestNewPrompterLayersAnswersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte("port: 3000\nmigrate: yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runAnswersPath, runDefaults = path, true
	t.Cleanup(func() { runAnswersPath, runDefaults = "", false })

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	p, err := newPrompter(cmd)
	if err != nil {
		t.Fatalf("newPrompter: %v", err)
	}

	port, err := p.Ask(prompt.Question{Key: apply.KeyPort}, "5000")
	if err != nil || port != "3000" {
		t.Errorf("port = %q, %v; want 3000", port, err)
	}
	migrate, _ := p.Yes(prompt.Question{Key: apply.KeyMigrate})
	if !migrate {
		t.Error("migrate should come from the answers file")
	}
	env, _ := p.Yes(prompt.Question{Key: apply.KeyEnvFile, Default: true})
	if !env {
		t.Error("unanswered question should fall back to its default")
	}
}

func TestNewPrompterRejectsUnknownAnswerKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte("port: 3000\nplatfrom: fly\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runAnswersPath = path
	t.Cleanup(func() { runAnswersPath = "" })

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	_, err := newPrompter(cmd)
	if err == nil {
		t.Fatal("expected an error for a misspelled key")
	}
	if !strings.Contains(err.Error(), `platfrom`) || !strings.Contains(err.Error(), apply.KeyPlatform) {
		t.Errorf("error should name the bad key and the valid ones: %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestNewDryRunStopsAfterRailsNew(t *testing.T) {
	chdir(t, t.TempDir())
	t.Cleanup(func() { runDryRun = false })

	out, err := execute(t, "new", "blog", "--dry-run")
	if err != nil {
		t.Fatalf("new --dry-run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[dry-run] rails new blog --database=postgresql --skip-bundle\n") {
		t.Errorf("rails new was not printed:\n%s", out)
	}
	if !strings.Contains(out, "Dry run: no application was generated") {
		t.Errorf("missing dry-run notice:\n%s", out)
	}
	if strings.Contains(out, "bundle install") {
		t.Errorf("recipe steps should not run in a dry run:\n%s", out)
	}
	if _, err := os.Stat("blog"); !os.IsNotExist(err) {
		t.Errorf("dry run created the application directory: %v", err)
	}
}

func fakeToolChecker(t *testing.T, rails string) {
	t.Helper()
	rec := runnertest.New()
	rec.Responses["ruby --version"] = runner.Result{Stdout: "ruby 3.3.0p0 (2023-12-25 revision 5124f9ac75) [x86_64-linux]\n"}
	rec.Responses["rails --version"] = runner.Result{Stdout: rails + "\n"}
	rec.Responses["bundle --version"] = runner.Result{Stdout: "Bundler version 2.5.3\n"}
	rec.Responses["git --version"] = runner.Result{Stdout: "git version 2.43.0\n"}

	orig := newToolChecker
	newToolChecker = func() *toolcheck.Checker {
		return &toolcheck.Checker{
			Runner:   rec,
			LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		}
	}
	t.Cleanup(func() { newToolChecker = orig })
}

func TestDoctorReport(t *testing.T) {
	fakeToolChecker(t, "Rails 7.1.0")
	t.Setenv("GITHUB_TOKEN", "")

	out, err := execute(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	for _, want := range []string{
		"[ OK ] ruby 3.3.0 found at /usr/bin/ruby",
		"[ OK ] rails 7.1.0 found at /usr/bin/rails",
		`[ OK ] rails 7.1.0 satisfies ">= 4.0"`,
		"[ OK ] All 4 tools found",
		"Configuration:",
		"[WARN] GITHUB_TOKEN is not set",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorFailsOnOldRails(t *testing.T) {
	fakeToolChecker(t, "Rails 3.2.22")
	t.Setenv("GITHUB_TOKEN", "")

	out, err := execute(t, "doctor")
	if err == nil {
		t.Fatalf("expected doctor to fail:\n%s", out)
	}
	if !strings.Contains(out, `[FAIL] rails 3.2.22 does not satisfy recipe constraint ">= 4.0"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2024-01-01"

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "railstart version 1.2.3 (commit: abc123") {
		t.Errorf("unexpected output: %q", out)
	}

	versionShort = true
	t.Cleanup(func() { versionShort = false })
	out, err = execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if out != "1.2.3\n" {
		t.Errorf("version --short = %q", out)
	}
}

func TestRecipeShowPrintsDefault(t *testing.T) {
	out, err := execute(t, "recipe", "show")
	if err != nil {
		t.Fatalf("recipe show: %v", err)
	}
	if out != string(recipe.DefaultBytes()) {
		t.Errorf("recipe show did not print the embedded recipe")
	}
}

func TestRecipeValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, recipe.DefaultBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: broken\nunknown: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "recipe", "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[ OK ] Valid recipe: rails-heroku-starter") {
		t.Errorf("unexpected output: %q", out)
	}

	out, err = execute(t, "recipe", "validate", bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "[FAIL]") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	t.Setenv("HOME", home)

	rootCmd.SetArgs([]string{"config", "set", "platform", "fly"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out.Reset()
	rootCmd.SetArgs([]string{"config", "get", "platform"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out.String()) != "fly" {
		t.Errorf("config get platform = %q, want fly", out.String())
	}

	rootCmd.SetArgs([]string{"config", "set", "colour", "blue"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestApplyRejectsNonRailsDir(t *testing.T) {
	_, err := execute(t, "apply", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "does not look like a Rails application") {
		t.Errorf("err = %v", err)
	}
}
