package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/finhealth/internal/app"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Look up ticker symbols by company name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(verbose); err != nil {
			return err
		}

		application, err := app.NewAnalyzer(config, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		suggestions, err := application.SearchService.Suggest(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(suggestions) == 0 {
			fmt.Fprintln(out, "No matches")
			return nil
		}
		for _, s := range suggestions {
			if s.Exchange != "" {
				fmt.Fprintf(out, "%s (%s)\n", s.Label(), s.Exchange)
			} else {
				fmt.Fprintln(out, s.Label())
			}
		}
		return nil
	},
}
