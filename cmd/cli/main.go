package main

import (
	"fmt"
	"os"

	"il-surface/internal/config"
	"il-surface/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	envFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Impermanent loss surface for a two-asset Uniswap position",
	Long: `cli prices a pair on Uniswap, evaluates impermanent loss over a grid of
hypothetical prices and reports the end value of a 50/50 position under one scenario.

examples:
  cli simulate --config examples/config.yaml --html results/surface.html
  cli simulate --price 2000 --quote-pct 25
  cli quote --save results/quote.json
  cli table --price 2000 --scenario 0:25 --scenario 0:-50 --scenario 10:100`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
		var err error
		logger, err = logging.FromEnv(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", os.Getenv("CONFIG_PATH"), "Path to YAML config (defaults reproduce the USDC/ETH reference run)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file providing WEB3")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(simulateCmd, quoteCmd, tableCmd)
}

// loadConfig reads --config when given, otherwise the built-in defaults.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
