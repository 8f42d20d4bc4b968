//go:build integration

package integration_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/runner/runnertest"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds ~/.railstart/config.yaml
	ProjectDir string // a Rails application as `rails new` leaves it
}

// setupTestEnv creates an isolated HOME, a git identity and a mock Rails
// application. Git runs for real, so the test is skipped without it.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "blog"),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Railstart Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Railstart Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	writeFile(t, filepath.Join(env.ProjectDir, "Gemfile"), "source \"https://rubygems.org\"\n\ngem \"rails\"\n")
	writeFile(t, filepath.Join(env.ProjectDir, "config/application.rb"),
		"module Blog\n  class Application < Rails::Application\n  end\nend\n")
	for _, name := range []string{"development", "test", "production"} {
		writeFile(t, filepath.Join(env.ProjectDir, "config/environments", name+".rb"),
			"Rails.application.configure do\n  # config.cache_store = :mem_cache_store\nend\n")
	}
	writeFile(t, filepath.Join(env.ProjectDir, "config/initializers/session_store.rb"),
		"Rails.application.config.session_store :cookie_store\n")
	writeFile(t, filepath.Join(env.ProjectDir, "app/controllers/application_controller.rb"),
		"class ApplicationController < ActionController::Base\n  protect_from_forgery with: :exception\nend\n")
	writeFile(t, filepath.Join(env.ProjectDir, "app/assets/stylesheets/application.css"), " *= require_tree .\n")
	writeFile(t, filepath.Join(env.ProjectDir, "app/assets/javascripts/application.js"), "//= require_tree .\n")
	writeFile(t, filepath.Join(env.ProjectDir, ".gitignore"), "/.bundle\n/log/*.log\n/tmp\n")

	return env
}

// splitRunner sends git to the real executor and everything else (bundle,
// rails) to a recorder.
type splitRunner struct {
	git  runner.Runner
	fake *runnertest.Recorder
}

func newSplitRunner() *splitRunner {
	return &splitRunner{git: runner.NewExec(nil), fake: runnertest.New()}
}

func (s *splitRunner) Run(ctx context.Context, name string, args []string, opts runner.Opts) (runner.Result, error) {
	if name == "git" {
		return s.git.Run(ctx, name, args, opts)
	}
	return s.fake.Run(ctx, name, args, opts)
}

// gitOutput runs git in dir and returns trimmed stdout.
func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out))
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertFileContains fails the test if the file does not contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q", path, substr)
	}
}
