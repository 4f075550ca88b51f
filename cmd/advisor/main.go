package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mlorentedev/advisor/internal/config"
)

var (
	configPath string
	envFile    string
	verbose    bool
	useMock    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Expert persona demo: ask a real-estate or nutrition expert",
	Long: `advisor sends one question to an LLM acting as the selected expert.

Personas:
  A  real-estate investment advisor
  B  nutrition expert
Any other selector falls back to a general assistant.

Run "advisor serve" for the web page, or "advisor ask" for a one-shot answer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use mock adapter instead of real LLM backends")

	rootCmd.AddCommand(serveCmd, askCmd, personasCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
