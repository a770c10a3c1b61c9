package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/output"
	"github.com/spf13/cobra"
)

// fileExtensions maps report formatters to the extension used with --out
var fileExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
}

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Find the cheapest plan combination for one scenario",
		Long: "Evaluates every plan combination for the configured scenario and reports the best one.\n" +
			"Scenario flags override the values from the configuration file.",
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

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			report, err := engine.Report(scenario)
			if err != nil {
				return err
			}

			if toFile, _ := cmd.Flags().GetBool("out"); toFile {
				filename, err := output.WriteFormatted(f, report, fileExtensions[f.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addScenarioFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html)")
	cmd.Flags().Bool("out", false, "Write the report to a timestamped file in the working directory")
	return cmd
}
