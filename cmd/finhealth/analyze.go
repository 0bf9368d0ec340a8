package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/finhealth/internal/app"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/report"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat string
	outputWidth  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER [TICKER...]",
	Short: "Score one or more companies and print the report",
	Example: `  finhealth analyze AAPL
  finhealth analyze AAPL MSFT.US BHP.AU --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, markdown, json or yaml")
	analyzeCmd.Flags().IntVarP(&outputWidth, "width", "w", 100, "Word wrap width for text output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(outputFormat)
	switch format {
	case "text", "markdown", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", outputFormat)
	}

	if err := loadConfig(verbose); err != nil {
		return err
	}

	application, err := app.NewAnalyzer(config, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	reports, err := application.AnalysisService.AnalyzeBatch(context.Background(), args)
	if err != nil {
		return err
	}

	if err := writeReports(cmd.OutOrStdout(), reports, format, outputWidth); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(reports))
	}
	return nil
}

func writeReports(w io.Writer, reports []*analysis.Report, format string, width int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(reports)

	case "yaml":
		// Round-trip through JSON so YAML keys match the API field names
		var doc interface{}
		raw, err := json.Marshal(reports)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}

	for i, r := range reports {
		md := report.Render(r)
		if i > 0 {
			fmt.Fprintln(w)
		}
		if format == "markdown" {
			fmt.Fprint(w, md)
			continue
		}
		out, err := report.Terminal(md, width)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	}
	return nil
}
