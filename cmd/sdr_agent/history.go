package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generation history",
	Long:  "List recent email generations recorded in the history database. Requires DATABASE_URL.",
	RunE:  runHistory,
}

var (
	historyDatabaseURL string
	historyLimit       int
	historyCompany     string
	historyMode        string
	historyStatus      string
)

func init() {
	historyCmd.Flags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum rows to list (default 50)")
	historyCmd.Flags().StringVar(&historyCompany, "company", "", "Filter by company name substring")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "Filter by generation mode")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status: succeeded or failed")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	databaseURL := historyDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	generations, err := database.ListGenerations(ctx, db.GenerationFilters{
		Company: historyCompany,
		Mode:    historyMode,
		Status:  historyStatus,
		Limit:   historyLimit,
	})
	if err != nil {
		return err
	}

	if len(generations) == 0 {
		fmt.Println("No generations recorded.")
		return nil
	}

	for _, g := range generations {
		subject := g.Subject
		if subject == "" {
			subject = "-"
		}
		fmt.Printf("%s  %-9s  %-8s  %-20s  %-20s  %s\n",
			g.CreatedAt.Format("2006-01-02 15:04"),
			g.Status, g.Mode, truncateCell(g.ProspectName, 20), truncateCell(g.CompanyName, 20), subject)
	}
	return nil
}

func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
