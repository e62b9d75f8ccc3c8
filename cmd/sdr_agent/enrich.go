package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shegge-stack/EmailGenerator/internal/enrich"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich prospect data from a LinkedIn URL or company website",
	Long: `Recover prospect hints from compliant sources: the public structure of
a LinkedIn profile URL (plus the Apollo.io people-match API when
APOLLO_API_KEY is set), or a summary of the company's own website.
LinkedIn itself is never scraped. Both sources run concurrently when
both flags are given.`,
	RunE: runEnrich,
}

var (
	enrichLinkedIn   string
	enrichWebsite    string
	enrichUseBrowser bool
)

func init() {
	enrichCmd.Flags().StringVar(&enrichLinkedIn, "linkedin", "", "LinkedIn profile URL to enrich from")
	enrichCmd.Flags().StringVar(&enrichWebsite, "website", "", "Company website URL to summarize")
	enrichCmd.Flags().BoolVar(&enrichUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered sites (requires Chrome)")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, _ []string) error {
	if enrichLinkedIn == "" && enrichWebsite == "" {
		return fmt.Errorf("provide --linkedin or --website")
	}

	var (
		profile *enrich.Enrichment
		summary string
	)

	g, ctx := errgroup.WithContext(context.Background())
	if enrichLinkedIn != "" {
		g.Go(func() error {
			enricher := enrich.NewEnricher(os.Getenv("APOLLO_API_KEY"))
			result, err := enricher.EnrichProfile(ctx, enrichLinkedIn)
			if err != nil {
				return err
			}
			profile = result
			return nil
		})
	}
	if enrichWebsite != "" {
		g.Go(func() error {
			result, err := enrich.CompanyContext(ctx, enrichWebsite, enrich.WebsiteOptions{UseBrowser: enrichUseBrowser})
			if err != nil {
				return err
			}
			summary = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if profile != nil {
		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal enrichment: %w", err)
		}
		fmt.Println(string(data))
	}
	if summary != "" {
		fmt.Println(summary)
	}

	return nil
}
