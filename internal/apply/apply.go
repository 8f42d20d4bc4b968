package apply

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/railstart-labs/railstart/internal/gemfile"
	"github.com/railstart-labs/railstart/internal/patch"
	"github.com/railstart-labs/railstart/internal/prompt"
	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/vcs"
)

// RepoCreator creates the remote repository for the GitHub step.
type RepoCreator interface {
	CreateRepo(ctx context.Context, name string) (*vcs.Repository, error)
}

// Settings are user-level overrides for the recipe defaults. Empty fields
// fall back to the recipe.
type Settings struct {
	WebPort    string
	Platform   string
	UserModel  string
	GitHubUser string
	PushBranch string
}

// Options configures an Applier.
type Options struct {
	Dir      string // project root
	AppName  string // defaults to the base name of Dir
	Recipe   *recipe.Recipe
	Prompter prompt.Prompter
	Runner   runner.Runner
	GitHub   RepoCreator
	Settings Settings
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *zap.Logger
}

// Summary collects what a run did.
type Summary struct {
	Files    []string
	Patches  []string
	Commands []string
	Warnings []string
}

// Applier runs the recipe against one project directory.
type Applier struct {
	opts    Options
	patcher *patch.Patcher
	gems    *gemfile.Editor
	rails   *runner.Rails
	git     *vcs.Git
	logger  *zap.Logger
	summary *Summary

	// Answers carried between steps.
	port      string
	modelName string
	platform  string
}

// New validates opts and returns an Applier.
func New(opts Options) (*Applier, error) {
	if opts.Dir == "" {
		return nil, errors.New("project directory is required")
	}
	if opts.Recipe == nil {
		return nil, errors.New("recipe is required")
	}
	if opts.Runner == nil {
		return nil, errors.New("runner is required")
	}
	if opts.Prompter == nil {
		opts.Prompter = prompt.Defaults{}
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Dir, err)
	}
	opts.Dir = dir
	if opts.AppName == "" {
		opts.AppName = filepath.Base(dir)
	}

	a := &Applier{
		opts:    opts,
		patcher: patch.New(dir),
		gems:    gemfile.New(dir),
		logger:  opts.Logger.With(zap.String("app", opts.AppName)),
		summary: &Summary{},
	}
	r := &recordingRunner{next: opts.Runner, summary: a.summary}
	a.rails = runner.NewRails(r, dir, opts.Stdout, opts.Stderr, a.logger)
	a.git = vcs.NewGit(r, dir, opts.Stdout, opts.Stderr, a.logger)
	return a, nil
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

func (a *Applier) steps() []step {
	return []step{
		{"declare gems", a.declareGems},
		{"configure caching", a.configureCaching},
		{"emit config files", a.emitConfigFiles},
		{"local environment", a.localEnvironment},
		{"bundle install", a.bundleInstall},
		{"devise install", a.deviseInstall},
		{"authorization and test generators", a.generators},
		{"devise model", a.deviseModel},
		{"hosting platform", a.hostingPlatform},
		{"assets", a.tidyAssets},
		{"database pool", a.databasePool},
		{"migrations", a.migrations},
		{"git bootstrap", a.gitBootstrap},
		{"github", a.github},
	}
}

// Run executes every step in order and stops at the first error. The
// summary is returned in both cases.
func (a *Applier) Run(ctx context.Context) (*Summary, error) {
	a.logger.Info("applying recipe",
		zap.String("recipe", a.opts.Recipe.Name),
		zap.String("dir", a.opts.Dir))

	for _, s := range a.steps() {
		if err := ctx.Err(); err != nil {
			return a.summary, err
		}
		a.logger.Info("step", zap.String("name", s.name))
		if err := s.run(ctx); err != nil {
			return a.summary, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return a.summary, nil
}

// warn records a non-fatal problem.
func (a *Applier) warn(msg string, err error) {
	a.logger.Warn(msg, zap.Error(err))
	a.summary.Warnings = append(a.summary.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

// patched records a successful patch, or downgrades a missing anchor or
// missing file to a warning. Any other error is returned.
func (a *Applier) patched(what string, err error) error {
	if errors.Is(err, patch.ErrAnchorNotFound) || errors.Is(err, fs.ErrNotExist) {
		a.warn("skipped "+what, err)
		return nil
	}
	if err != nil {
		return err
	}
	a.logger.Debug("patched", zap.String("what", what))
	a.summary.Patches = append(a.summary.Patches, what)
	return nil
}

func (a *Applier) wrote(files ...string) {
	for _, f := range files {
		a.logger.Debug("wrote file", zap.String("path", f))
	}
	a.summary.Files = append(a.summary.Files, files...)
}

// recordingRunner appends every command line to the summary.
type recordingRunner struct {
	next    runner.Runner
	summary *Summary
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string, opts runner.Opts) (runner.Result, error) {
	r.summary.Commands = append(r.summary.Commands, runner.CommandLine(name, args))
	return r.next.Run(ctx, name, args, opts)
}

func (a *Applier) defaultPort() string {
	if a.opts.Settings.WebPort != "" {
		return a.opts.Settings.WebPort
	}
	return a.opts.Recipe.Defaults.WebPortString()
}

func (a *Applier) defaultPlatform() string {
	if a.opts.Settings.Platform != "" {
		return a.opts.Settings.Platform
	}
	return a.opts.Recipe.Defaults.Platform
}

func (a *Applier) defaultModel() string {
	if a.opts.Settings.UserModel != "" {
		return a.opts.Settings.UserModel
	}
	return a.opts.Recipe.Defaults.UserModel
}
