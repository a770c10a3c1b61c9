package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/config"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Tests build a fresh tree per run so flag
// state does not leak between executions.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medplan",
		Short: "Family medical plan optimizer",
		Long: "Evaluates every way a two-adult household with one dependent can enroll in the\n" +
			"medical plans offered by both employers and finds the cheapest combination.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file (default: built-in plans)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging of every option evaluated")

	cmd.AddCommand(evaluateCmd())
	cmd.AddCommand(rankCmd())
	cmd.AddCommand(sweepCmd())
	cmd.AddCommand(breakevenCmd())
	cmd.AddCommand(plansCmd())
	cmd.AddCommand(templatesCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func setupLogging(cmd *cobra.Command) error {
	cfg := logging.DefaultConfig()
	cfg.Level, _ = cmd.Flags().GetString("log-level")
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		cfg.Level = "debug"
		cfg.Development = true
	}
	if err := logging.Initialize(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// loadConfiguration reads --config, or returns the built-in configuration
func loadConfiguration(cmd *cobra.Command) (*domain.Configuration, string, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewInputParser().LoadOrDefault(path)
	if err != nil {
		return nil, path, err
	}
	logging.Debug("configuration loaded",
		zap.String("path", path),
		zap.Int("plans", len(cfg.Plans)))
	return cfg, path, nil
}

// newEngine builds a calculation engine that logs through zap
func newEngine(cfg *domain.Configuration) (*calculation.CalculationEngine, error) {
	engine, err := calculation.NewCalculationEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.Sugar)
	return engine, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error("command failed", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}
