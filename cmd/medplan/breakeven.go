package main

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/breakeven"
	"github.com/rgehrsitz/medplan/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func breakevenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the expense and tax levels at which the best plan combination changes",
		Long: "Varies one scenario input at a time (mom, dad, baby or tax) across a range and\n" +
			"reports every value at which a different plan combination becomes cheapest.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfiguration(cmd)
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

			options := breakeven.DefaultSolverOptions()
			options.GridResolution, _ = cmd.Flags().GetInt("grid")
			solver := breakeven.NewSolver(engine, options)

			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}

			dimension, _ := cmd.Flags().GetString("dimension")
			logging.Info("starting break-even analysis", zap.String("dimension", dimension), zap.Stringer("scenario", scenario))

			var out string
			if dimension == "all" {
				if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
					return fmt.Errorf("--min and --max require a single --dimension")
				}
				result, err := solver.SolveAll(cmd.Context(), scenario, nil)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
				} else {
					out = (&breakeven.TableFormatter{}).FormatMultiDimensional(result)
				}
				if err != nil {
					return err
				}
			} else {
				d, err := breakeven.ParseDimension(dimension)
				if err != nil {
					return err
				}
				r, err := rangeFromFlags(cmd, d)
				if err != nil {
					return err
				}
				result, err := solver.Solve(cmd.Context(), breakeven.Request{Scenario: scenario, Dimension: d, Range: r})
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				} else {
					out = (&breakeven.TableFormatter{}).Format(result)
				}
				if err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			if format == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	addScenarioFlags(cmd)
	cmd.Flags().StringP("dimension", "d", "all", "Input to vary (mom, dad, baby, tax or all)")
	cmd.Flags().String("min", "", "Lower end of the search range (default 0)")
	cmd.Flags().String("max", "", "Upper end of the search range (default 50000, or 0.5 for tax)")
	cmd.Flags().Int("grid", breakeven.DefaultSolverOptions().GridResolution, "Number of scan intervals before bisecting")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

// rangeFromFlags applies --min and --max on top of the dimension's default range
func rangeFromFlags(cmd *cobra.Command, d breakeven.Dimension) (breakeven.Range, error) {
	r := breakeven.DefaultRange(d)
	for _, f := range []struct {
		flag   string
		target *decimal.Decimal
	}{
		{"min", &r.Min},
		{"max", &r.Max},
	} {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return breakeven.Range{}, fmt.Errorf("invalid --%s value %q: %w", f.flag, raw, err)
		}
		*f.target = value
	}
	return r, nil
}
