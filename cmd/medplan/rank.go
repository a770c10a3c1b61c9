package main

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/compare"
	"github.com/spf13/cobra"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Compare the best plan combination with the runners-up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, configPath, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			scenario, err := scenarioFromFlags(cmd, cfg.Scenario)
			if err != nil {
				return err
			}
			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			top, _ := cmd.Flags().GetInt("top")
			include, _ := cmd.Flags().GetStringSlice("include")
			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), scenario, compare.CompareOptions{
				Top:     top,
				Include: include,
			})
			if err != nil {
				return err
			}
			compSet.ConfigPath = configPath

			var out string
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addScenarioFlags(cmd)
	cmd.Flags().IntP("top", "n", 5, "Number of runners-up to compare")
	cmd.Flags().StringSlice("include", nil, "Option names to include regardless of rank")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
