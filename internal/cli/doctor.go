package cli

import (
	"fmt"

	"github.com/railstart-labs/railstart/internal/branding"
	"github.com/railstart-labs/railstart/internal/config"
	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/railstart-labs/railstart/internal/toolcheck"
	"github.com/railstart-labs/railstart/internal/vcs"
	"github.com/spf13/cobra"
)

var doctorRecipePath string

// newToolChecker is replaced in tests.
var newToolChecker = func() *toolcheck.Checker {
	return &toolcheck.Checker{Runner: runner.NewExec(logger)}
}

func init() {
	doctorCmd.Flags().StringVar(&doctorRecipePath, "recipe", "", "Check against this recipe's Rails constraint")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the tools " + branding.CLIName() + " shells out to are installed",
	Long: `Verify ruby, rails, bundle and git are on PATH, that the installed Rails
satisfies the recipe's version constraint, and report the user configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		rec, err := recipe.Load(doctorRecipePath)
		if err != nil {
			return err
		}

		problems := toolcheck.Report(out, newToolChecker().Check(cmd.Context()), rec.Rails)

		fmt.Fprintln(out, "\nConfiguration:")
		fmt.Fprintf(out, "  [INFO] config file: %s\n", config.FilePath())
		for _, kv := range config.Keys() {
			if value := config.Get(kv[0]); value != "" {
				fmt.Fprintf(out, "  [INFO] %s = %s\n", kv[0], value)
			}
		}

		gh, err := vcs.LoadGitHubConfig()
		switch {
		case err != nil:
			fmt.Fprintf(out, "  [WARN] GitHub settings: %v\n", err)
		case gh.Token == "":
			fmt.Fprintln(out, "  [WARN] GITHUB_TOKEN is not set; repository creation will fail")
		default:
			fmt.Fprintf(out, "  [ OK ] GITHUB_TOKEN set (API %s)\n", gh.APIURL)
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}
