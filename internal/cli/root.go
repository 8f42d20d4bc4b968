package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/railstart-labs/railstart/internal/branding"
	"github.com/railstart-labs/railstart/internal/config"
	"github.com/railstart-labs/railstart/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps a freshly generated Rails application: it declares gems,
writes deployment config, runs the devise, cancan and minitest generators,
patches the generated files and makes the first git commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		config.Load()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
