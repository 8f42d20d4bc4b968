package runner

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Rails wraps the Bundler, Rails and Rake invocations made against one
// application directory. Every call blocks until the process exits; any
// failure is returned and nothing is retried.
type Rails struct {
	runner Runner
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// NewRails returns a Rails invoker for the application in dir. Command output
// is mirrored to stdout and stderr when they are non-nil.
func NewRails(r Runner, dir string, stdout, stderr io.Writer, logger *zap.Logger) *Rails {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rails{runner: r, dir: dir, stdout: stdout, stderr: stderr, logger: logger}
}

// NewApp runs `rails new <name>` inside parent.
func (r *Rails) NewApp(ctx context.Context, parent, name string, extra []string) error {
	args := append([]string{"new", name, "--database=postgresql", "--skip-bundle"}, extra...)
	return r.run(ctx, parent, "rails", args)
}

// BundleInstall resolves and installs the Gemfile.
func (r *Rails) BundleInstall(ctx context.Context) error {
	return r.run(ctx, r.dir, "bundle", []string{"install"})
}

// Generate runs a Rails generator, e.g. Generate(ctx, "devise:install").
func (r *Rails) Generate(ctx context.Context, generator string, args ...string) error {
	full := append([]string{"exec", "rails", "generate", generator}, args...)
	return r.run(ctx, r.dir, "bundle", full)
}

// Rake runs a Rake task, e.g. Rake(ctx, "db:migrate").
func (r *Rails) Rake(ctx context.Context, task string) error {
	return r.run(ctx, r.dir, "bundle", []string{"exec", "rake", task})
}

func (r *Rails) run(ctx context.Context, dir, name string, args []string) error {
	r.logger.Info("run", zap.String("command", CommandLine(name, args)))
	res, err := r.runner.Run(ctx, name, args, Opts{Dir: dir, Stdout: r.stdout, Stderr: r.stderr})
	return Check(res, err, name, args)
}
