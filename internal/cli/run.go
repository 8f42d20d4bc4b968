package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/railstart-labs/railstart/internal/apply"
	"github.com/railstart-labs/railstart/internal/config"
	"github.com/railstart-labs/railstart/internal/prompt"
	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/vcs"
	"github.com/spf13/cobra"
)

// Flags shared by `new` and `apply`.
var (
	runRecipePath  string
	runAnswersPath string
	runDefaults    bool
	runDryRun      bool
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runRecipePath, "recipe", "", "Recipe file to use instead of the built-in one")
	cmd.Flags().StringVar(&runAnswersPath, "answers", "", "YAML file of answers keyed by question")
	cmd.Flags().BoolVar(&runDefaults, "defaults", false, "Answer every question with its default")
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print generator, git and GitHub calls instead of running them; files are still written")
}

func newRunner(cmd *cobra.Command) runner.Runner {
	if runDryRun {
		return runner.NewDryRun(cmd.OutOrStdout(), logger)
	}
	return runner.NewExec(logger)
}

// newPrompter layers an answers file over the console, or over defaults
// when --defaults is set.
func newPrompter(cmd *cobra.Command) (prompt.Prompter, error) {
	var base prompt.Prompter = prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	if runDefaults {
		base = prompt.Defaults{}
	}
	if runAnswersPath == "" {
		return base, nil
	}

	answers, err := prompt.LoadAnswers(runAnswersPath)
	if err != nil {
		return nil, err
	}
	if err := checkAnswerKeys(answers); err != nil {
		return nil, fmt.Errorf("answers file %s: %w", runAnswersPath, err)
	}
	return prompt.NewScripted(answers, base, cmd.OutOrStdout()), nil
}

// checkAnswerKeys rejects answers keyed by no known question.
func checkAnswerKeys(answers map[string]string) error {
	known := make(map[string]bool)
	for _, k := range apply.QuestionKeys() {
		known[k] = true
	}

	var unknown []string
	for k := range answers {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown question key(s) %s; valid keys: %s",
		strings.Join(unknown, ", "), strings.Join(apply.QuestionKeys(), ", "))
}

func newRepoCreator(cmd *cobra.Command) (apply.RepoCreator, error) {
	if runDryRun {
		return vcs.NewDryRunGitHub(cmd.OutOrStdout()), nil
	}
	cfg, err := vcs.LoadGitHubConfig()
	if err != nil {
		return nil, err
	}
	return vcs.NewGitHub(cfg, nil), nil
}

func userSettings() apply.Settings {
	return apply.Settings{
		WebPort:    config.Get(config.KeyWebPort),
		Platform:   config.Get(config.KeyPlatform),
		UserModel:  config.Get(config.KeyUserModel),
		GitHubUser: config.Get(config.KeyGitHubUser),
		PushBranch: config.Get(config.KeyPushBranch),
	}
}

// applyRecipe runs the recipe in dir and prints the summary, also when the
// run stops early.
func applyRecipe(cmd *cobra.Command, dir, appName string, r runner.Runner) error {
	rec, err := recipe.Load(runRecipePath)
	if err != nil {
		return err
	}
	p, err := newPrompter(cmd)
	if err != nil {
		return err
	}
	gh, err := newRepoCreator(cmd)
	if err != nil {
		return err
	}

	a, err := apply.New(apply.Options{
		Dir:      dir,
		AppName:  appName,
		Recipe:   rec,
		Prompter: p,
		Runner:   r,
		GitHub:   gh,
		Settings: userSettings(),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	summary, runErr := a.Run(cmd.Context())
	printSummary(cmd.OutOrStdout(), rec.Name, summary)
	if runErr != nil {
		return fmt.Errorf("recipe %s stopped: %w", rec.Name, runErr)
	}
	return nil
}
