// Package cmd provides CLI commands for revenue.
package cmd

import (
	"github.com/punchamoorthee/revenueops/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug  bool
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Turn revenue facts into journal entries",
	Long: `revenue evaluates a fact file describing a deposit, payment, sale and
refund and prints the journal entries they imply, with GST applied
according to the business's registration and reporting method.

Example:
  revenue evaluate --file facts.yaml
  revenue evaluate --file facts.json --format beancount --accounts accounts.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if debug {
			level = "debug"
		}
		l, err := logging.New("development", level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(evaluateCmd)
}
