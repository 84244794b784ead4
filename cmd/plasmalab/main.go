package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/plasmalab/internal/config"
	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/tracker"
	"github.com/san-kum/plasmalab/internal/validate"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	devLog     bool

	cfg     *config.Config
	logger  = zap.NewNop()
	printer = message.NewPrinter(language.English)
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "plasmalab",
		Short:             "plasma formulary, particle data and particle tracking",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev", false, "human-readable development logging")

	rootCmd.AddCommand(
		newCalcCmd(),
		newFunctionsCmd(),
		newParticleCmd(),
		newSpectrumCmd(),
		newBatchCmd(),
		newTrackCmd(),
		newPresetsCmd(),
		newRunsCmd(),
		newPlotCmd(),
		newExportCmd(),
		newExploreCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and installs the logger in every library
// package.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if devLog {
		cfg.Log.Development = true
	}

	logger, err = newLogger(cfg.Log)
	if err != nil {
		return err
	}
	formulary.SetLogger(logger.Named("formulary"))
	validate.SetLogger(logger.Named("validate"))
	tracker.SetLogger(logger.Named("tracker"))
	return nil
}

func newLogger(c config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
