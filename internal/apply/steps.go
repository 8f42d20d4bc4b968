package apply

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/railstart-labs/railstart/internal/gitignore"
	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/railstart-labs/railstart/internal/scaffold"
	"github.com/railstart-labs/railstart/internal/vcs"
)

var (
	productionCacheStoreRe = regexp.MustCompile(productionCacheStorePattern)
	requireTreeRe          = regexp.MustCompile(requireTreeExpression)
	lower                  = cases.Lower(language.Und)
)

func (a *Applier) declareGems(_ context.Context) error {
	for _, g := range a.opts.Recipe.Gems {
		if _, err := a.addGem(g); err != nil {
			return err
		}
	}
	for _, grp := range a.opts.Recipe.Groups {
		added, err := a.gems.AddGroup(grp.Envs, grp.Gems)
		if err != nil {
			return err
		}
		for _, g := range added {
			a.logger.Debug("declared gem", zap.String("gem", g.Name), zap.Strings("group", grp.Envs))
		}
	}
	return nil
}

func (a *Applier) addGem(g recipe.Gem) (bool, error) {
	added, err := a.gems.AddGem(g)
	if err != nil {
		return false, err
	}
	if added {
		a.logger.Debug("declared gem", zap.String("gem", g.Name))
	} else {
		a.logger.Debug("gem already declared", zap.String("gem", g.Name))
	}
	return added, nil
}

func (a *Applier) configureCaching(_ context.Context) error {
	_, err := a.patcher.Gsub(pathProduction, productionCacheStoreRe, productionCacheStore)
	if err := a.patched("production cache store", err); err != nil {
		return err
	}
	for _, env := range []string{"development", "test"} {
		err := a.patcher.Application(environmentConfig, env)
		if err := a.patched(env+" environment config", err); err != nil {
			return err
		}
	}

	if err := a.patcher.RemoveFile(pathSessionStore); err != nil {
		return err
	}
	if err := scaffold.WriteFile(a.patcher, scaffold.SessionStore, a.data(a.defaultPort())); err != nil {
		return err
	}
	a.wrote(scaffold.SessionStore.Path)
	return nil
}

func (a *Applier) emitConfigFiles(_ context.Context) error {
	res, err := scaffold.Generate(scaffold.SetBase, a.data(a.defaultPort()), a.patcher)
	if err != nil {
		return err
	}
	a.wrote(res.Files...)
	return nil
}

func (a *Applier) localEnvironment(_ context.Context) error {
	ok, err := a.opts.Prompter.Yes(questionEnvFile)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	def := a.defaultPort()
	a.port, err = a.opts.Prompter.Ask(questionPort(def), def)
	if err != nil {
		return err
	}
	res, err := scaffold.Generate(scaffold.SetEnv, a.data(a.port), a.patcher)
	if err != nil {
		return err
	}
	a.wrote(res.Files...)
	return nil
}

func (a *Applier) bundleInstall(ctx context.Context) error {
	return a.rails.BundleInstall(ctx)
}

func (a *Applier) deviseInstall(ctx context.Context) error {
	if err := a.rails.Generate(ctx, "devise:install"); err != nil {
		return err
	}
	err := a.patcher.InjectAfter(pathController, controllerAnchor, controllerPatch)
	return a.patched("application controller", err)
}

func (a *Applier) generators(ctx context.Context) error {
	if err := a.rails.Generate(ctx, "cancan:ability"); err != nil {
		return err
	}
	if err := a.rails.Generate(ctx, "mini_test:install"); err != nil {
		return err
	}
	return a.patched("application generators", a.patcher.Application(generatorsConfig, ""))
}

func (a *Applier) deviseModel(ctx context.Context) error {
	ok, err := a.opts.Prompter.Yes(questionDeviseModel)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	def := a.defaultModel()
	a.modelName, err = a.opts.Prompter.Ask(questionModelName(def), def)
	if err != nil {
		return err
	}
	if err := a.rails.Generate(ctx, "devise", a.modelName); err != nil {
		return err
	}

	model := ModelPath(a.modelName)
	for _, line := range deviseModelLines {
		_, err := a.patcher.ReplaceAll(model, line, "")
		if err := a.patched(model+" attr_accessible", err); err != nil {
			return err
		}
	}
	return nil
}

// ModelPath returns the file the devise generator writes for name.
func ModelPath(name string) string {
	return "app/models/" + lower.String(name) + ".rb"
}

// hostingPlatform declares the platform's gems and installs them, so later
// `bundle exec` calls find every declared gem.
func (a *Applier) hostingPlatform(ctx context.Context) error {
	def := a.defaultPlatform()
	var err error
	a.platform, err = a.opts.Prompter.Ask(questionPlatform(def), def)
	if err != nil {
		return err
	}

	installed := false
	for _, g := range a.opts.Recipe.GemsForPlatform(a.platform) {
		added, err := a.addGem(g)
		if err != nil {
			return err
		}
		installed = installed || added
	}
	if !installed {
		return nil
	}
	return a.rails.BundleInstall(ctx)
}

func (a *Applier) tidyAssets(_ context.Context) error {
	err := a.patcher.Rename(pathStylesheet, pathStylesheetSCSS)
	if err := a.patched("rename "+pathStylesheet, err); err != nil {
		return err
	}

	for _, rel := range []string{pathJavaScript, pathStylesheetSCSS} {
		n, err := a.patcher.DeleteLines(rel, requireTreeRe)
		if err == nil && n == 0 {
			continue
		}
		if err := a.patched(rel+" require_tree", err); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) databasePool(_ context.Context) error {
	res, err := scaffold.Generate(scaffold.SetPool, a.data(a.defaultPort()), a.patcher)
	if err != nil {
		return err
	}
	a.wrote(res.Files...)
	return nil
}

func (a *Applier) migrations(ctx context.Context) error {
	ok, err := a.opts.Prompter.Yes(questionMigrate)
	if err != nil || !ok {
		return err
	}
	if err := a.rails.Rake(ctx, "db:migrate"); err != nil {
		return err
	}
	return a.rails.Rake(ctx, "db:test:prepare")
}

func (a *Applier) gitBootstrap(ctx context.Context) error {
	if err := a.git.Init(ctx); err != nil {
		return err
	}
	added, err := gitignore.Append(a.opts.Dir, a.opts.Recipe.Gitignore)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		a.logger.Debug("extended .gitignore", zap.Strings("entries", added))
		a.summary.Patches = append(a.summary.Patches, gitignore.FileName)
	}
	if err := a.git.AddAll(ctx); err != nil {
		return err
	}
	return a.git.Commit(ctx, commitMessage)
}

func (a *Applier) github(ctx context.Context) error {
	ok, err := a.opts.Prompter.Yes(questionGitHub)
	if err != nil || !ok {
		return err
	}

	url, err := a.git.RemoteURL(ctx, originRemote)
	if err != nil {
		return err
	}
	if url != "" {
		fmt.Fprintln(a.opts.Stdout, "Repository already exists:")
		fmt.Fprintln(a.opts.Stdout, url)
		return nil
	}

	user, err := a.opts.Prompter.Ask(questionGitHubUser, a.opts.Settings.GitHubUser)
	if err != nil {
		return err
	}
	if user == "" {
		return errors.New("a GitHub username is required to create the repository")
	}
	if a.opts.GitHub == nil {
		return errors.New("no GitHub client configured")
	}

	repo, err := a.opts.GitHub.CreateRepo(ctx, a.opts.AppName)
	switch {
	case errors.Is(err, vcs.ErrRepoExists):
		a.warn("using existing GitHub repository", err)
	case err != nil:
		return err
	default:
		a.logger.Info("created GitHub repository", zap.String("repo", repo.FullName))
	}

	if err := a.git.AddRemote(ctx, originRemote, vcs.SSHRemote(user, a.opts.AppName)); err != nil {
		return err
	}

	branch := a.opts.Settings.PushBranch
	if branch == "" {
		if branch, err = a.git.CurrentBranch(ctx); err != nil {
			return err
		}
	}
	if branch == "" {
		branch = "HEAD"
	}
	return a.git.Push(ctx, originRemote, branch)
}

func (a *Applier) data(port string) *scaffold.Data {
	return &scaffold.Data{AppName: a.opts.AppName, Port: port}
}
