package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/config"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/transform"
	"github.com/spf13/cobra"
)

func plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the plans in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, spec := range cfg.Plans {
				fmt.Fprintf(out, "%s (%s) sponsor=%s tier_policy=%s\n", spec.ID, spec.Name, spec.Sponsor, spec.Policy)
				fmt.Fprintf(out, "  %-14s %10s %11s %10s %10s %13s\n", "tier", "premium", "deductible", "oopm", "hsa match", "contribution")
				for _, tier := range domain.CoverageTiers {
					row, _ := spec.Tiers.Row(tier)
					fmt.Fprintf(out, "  %-14s %10s %11s %10s %10s %13s\n", tier,
						row.Premium.StringFixed(0), row.Deductible.StringFixed(0), row.OutOfPocketMax.StringFixed(0),
						row.EmployerHSAMatch.StringFixed(0), row.EmployeeHSAContribution.StringFixed(0))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in what-if templates and transforms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintf(out, "\nTransforms (--what-if name:key=value,...):\n  %s\n",
				strings.Join(transform.NewTransformRegistry().List(), "\n  "))
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			cfg, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			ids := make([]string, len(cfg.Plans))
			for i, p := range cfg.Plans {
				ids[i] = p.ID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d plans: %s; %d sweep points)\n",
				inputFile, len(cfg.Plans), strings.Join(ids, ", "), cfg.Sweep.Size())
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [output-file]",
		Short: "Write the built-in configuration to a YAML file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.DefaultConfiguration()
			if err := config.NewInputParser().SaveConfiguration(&cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", args[0])
			return nil
		},
	}
}
