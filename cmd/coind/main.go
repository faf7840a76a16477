// Package main implements the coind CLI: greatest fixpoints of the built-in
// relation games and coinductive proofs about them.
package main

import (
	"fmt"
	"os"
	"time"

	"coinduct/internal/companion"
	"coinduct/internal/config"
	"coinduct/internal/errors"
	"coinduct/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	logLevel   string
	universe   int
	timeout    time.Duration

	// Loaded in PersistentPreRunE
	cfg        *config.Config
	rootLogger *zap.Logger
	logger     *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "coind",
	Short: "coind - greatest fixpoints and up-to proofs on finite relations",
	Long: `coind computes greatest fixpoints of monotone functionals on finite
relation lattices and checks coinductive proofs about them with the companion.

Relations range over pairs of naturals below the universe size. The built-in
games are "eq" (equal naturals) and "sim" (x ≤ y).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		if universe > 0 {
			loaded.Universe.Size = universe
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		rootLogger, err = logging.New(cfg.Logging)
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger = logging.Named(rootLogger, cfg.Logging, logging.CategoryCLI)
		logger.Debug("Configuration loaded", zap.String("path", configPath), zap.Int("universe", cfg.Universe.Size))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rootLogger != nil {
			_ = rootLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "coind.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVarP(&universe, "universe", "n", 0, "Universe size (default: from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Oracle timeout")

	rootCmd.AddCommand(gfpCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(symmetryCmd)
	rootCmd.AddCommand(lawsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// engineOptions wires the loaded configuration into a companion engine.
func engineOptions() []companion.Option {
	return []companion.Option{
		companion.WithConfig(cfg.Engine),
		companion.WithLogger(logging.Named(rootLogger, cfg.Logging, logging.CategoryCompanion)),
	}
}
