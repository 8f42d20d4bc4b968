package cli

import (
	"fmt"

	"github.com/railstart-labs/railstart/internal/recipe"
	"github.com/spf13/cobra"
)

var recipeShowPath string

func init() {
	recipeShowCmd.Flags().StringVar(&recipeShowPath, "recipe", "", "Recipe file to show instead of the built-in one")
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeValidateCmd)
	rootCmd.AddCommand(recipeCmd)
}

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Inspect and validate recipes",
	Long: `A recipe lists the gems, gem groups, platform gems, defaults and ignore-list
entries applied to a Rails application. Copy the output of 'recipe show' to
start a custom recipe and pass it with --recipe.`,
}

var recipeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective recipe as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recipeShowPath == "" {
			_, err := cmd.OutOrStdout().Write(recipe.DefaultBytes())
			return err
		}

		rec, err := recipe.Load(recipeShowPath)
		if err != nil {
			return err
		}
		data, err := recipe.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var recipeValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a recipe file against the recipe schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recipe validation: %s\n", path)

		result, err := recipe.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
			return fmt.Errorf("recipe validation failed: %w", err)
		}

		if result.Valid {
			rec, err := recipe.ParseFile(path)
			if err != nil {
				fmt.Fprintf(out, "  [FAIL] %v\n", err)
				return err
			}
			fmt.Fprintf(out, "  [ OK ] Valid recipe: %s (v%s)\n", rec.Name, rec.Version)
			return nil
		}

		fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(out, "    - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("recipe %s has %d validation issue(s)", path, len(result.Issues))
	},
}
