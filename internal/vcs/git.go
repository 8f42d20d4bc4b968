package vcs

import (
	"context"
	"io"
	"strings"

	"github.com/railstart-labs/railstart/internal/runner"
	"go.uber.org/zap"
)

// Git runs git commands inside one working tree.
type Git struct {
	runner runner.Runner
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// NewGit returns a Git bound to dir.
func NewGit(r runner.Runner, dir string, stdout, stderr io.Writer, logger *zap.Logger) *Git {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Git{runner: r, dir: dir, stdout: stdout, stderr: stderr, logger: logger}
}

// Init creates (or reinitializes) the repository.
func (g *Git) Init(ctx context.Context) error {
	return g.run(ctx, "init")
}

// AddAll stages every file in the working tree.
func (g *Git) AddAll(ctx context.Context) error {
	return g.run(ctx, "add", ".")
}

// Commit records the staged changes with message.
func (g *Git) Commit(ctx context.Context, message string) error {
	return g.run(ctx, "commit", "-m", message)
}

// RemoteURL returns the URL configured for remote, or "" when none is set.
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	args := []string{"config", "remote." + remote + ".url"}
	res, err := g.runner.Run(ctx, "git", args, runner.Opts{Dir: g.dir})
	if err != nil {
		return "", runner.Check(res, err, "git", args)
	}
	// git config exits 1 when the key is unset.
	if res.ExitCode == 1 {
		return "", nil
	}
	if err := runner.Check(res, nil, "git", args); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// AddRemote registers url under name.
func (g *Git) AddRemote(ctx context.Context, name, url string) error {
	return g.run(ctx, "remote", "add", name, url)
}

// CurrentBranch returns the checked-out branch name.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	args := []string{"rev-parse", "--abbrev-ref", "HEAD"}
	res, err := g.runner.Run(ctx, "git", args, runner.Opts{Dir: g.dir})
	if err := runner.Check(res, err, "git", args); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Push pushes branch to remote and sets it as upstream.
func (g *Git) Push(ctx context.Context, remote, branch string) error {
	return g.run(ctx, "push", "-u", remote, branch)
}

func (g *Git) run(ctx context.Context, args ...string) error {
	g.logger.Info("run", zap.String("command", runner.CommandLine("git", args)))
	res, err := g.runner.Run(ctx, "git", args, runner.Opts{Dir: g.dir, Stdout: g.stdout, Stderr: g.stderr})
	return runner.Check(res, err, "git", args)
}
