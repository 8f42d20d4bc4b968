package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/railstart-labs/railstart/internal/runner"
	"github.com/spf13/cobra"
)

var appNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func init() {
	addRunFlags(newCmd)
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <app-name> [-- rails-new-args...]",
	Short: "Generate a Rails application and apply the recipe to it",
	Long: `Run 'rails new <app-name> --database=postgresql --skip-bundle' in the current
directory, then apply the recipe inside the new application.

Arguments after -- are passed to 'rails new' unchanged.

Examples:
  railstart new blog
  railstart new blog --defaults
  railstart new blog --answers answers.yaml -- --skip-test`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateAppName(name); err != nil {
			return err
		}

		parent, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		dir := filepath.Join(parent, name)
		if _, err := os.Stat(dir); err == nil {
			return fmt.Errorf("%s already exists", dir)
		}

		r := newRunner(cmd)
		rails := runner.NewRails(r, dir, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		if err := rails.NewApp(cmd.Context(), parent, name, args[1:]); err != nil {
			return err
		}
		if runDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "Dry run: no application was generated, skipping the recipe.")
			return nil
		}

		return applyRecipe(cmd, dir, name, r)
	},
}

func validateAppName(name string) error {
	if !appNamePattern.MatchString(name) {
		return fmt.Errorf("invalid application name %q: must match pattern [A-Za-z][A-Za-z0-9_-]*", name)
	}
	return nil
}
