package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/railstart-labs/railstart/internal/gemfile"
	"github.com/spf13/cobra"
)

func init() {
	addRunFlags(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply [dir]",
	Short: "Apply the recipe to an existing Rails application",
	Long: `Apply the recipe to a Rails application that 'rails new' already generated.
The application name is the directory's base name.

Examples:
  railstart apply
  railstart apply ../blog --dry-run
  railstart apply --recipe my-recipe.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}
		if _, err := os.Stat(filepath.Join(abs, gemfile.FileName)); err != nil {
			return fmt.Errorf("%s does not look like a Rails application: no %s", abs, gemfile.FileName)
		}

		return applyRecipe(cmd, abs, filepath.Base(abs), newRunner(cmd))
	},
}
