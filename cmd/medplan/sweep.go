package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/medplan/internal/logging"
	"github.com/rgehrsitz/medplan/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Find the best plan combination across a grid of scenarios",
		Long: "Evaluates the best option at every point of the configured sweep grid\n" +
			"(mom x dad x baby expenses x tax rates) and tallies how often each option wins.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetSweepFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format,
					strings.Join(output.AvailableSweepFormatterNames(), ", "))
			}
			outPath, _ := cmd.Flags().GetString("out")
			if f.Name() == "xlsx" && outPath == "" {
				return fmt.Errorf("xlsx output requires --out")
			}
			if points, _ := cmd.Flags().GetInt("points"); f.Name() == "console" {
				f = output.SweepConsoleFormatter{Points: points}
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			logging.Info("starting sweep", zap.Int("points", cfg.Sweep.Size()))
			result, err := engine.Sweep(cmd.Context(), cfg.Sweep)
			if err != nil {
				return err
			}

			data, err := f.FormatSweep(result)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sweep of %d scenarios written to %s\n", len(result.Points), outPath)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, xlsx)")
	cmd.Flags().StringP("out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().Int("points", 0, "Console format: list this many grid points after the tally")
	return cmd
}
