// Command polygen serves, views and converts polyform puzzles.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/polygen/internal/config"
	"svw.info/polygen/internal/logging"
)

var (
	cfgPath  string
	logLevel string
	solverFl string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "polygen",
	Short: "Soma cube and pentomino puzzle tool",
	Long: `polygen builds, solves and displays three-dimensional polyform puzzles.

Puzzles are read and written in the polygen JSON format. Any FILE argument
may also be "-" for stdin or a share link produced by "polygen export --url".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if solverFl != "" {
			cfg.Solver.Kind = solverFl
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "polygen.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&solverFl, "solver", "", "dlx|backtrack (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
