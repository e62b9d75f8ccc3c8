package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/shegge-stack/EmailGenerator/internal/config"
	"github.com/shegge-stack/EmailGenerator/internal/db"
	"github.com/shegge-stack/EmailGenerator/internal/delivery"
	"github.com/shegge-stack/EmailGenerator/internal/enrich"
	"github.com/shegge-stack/EmailGenerator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server exposing the generation, validation, enrichment,
delivery, and tracking endpoints plus the dashboard. Optional
integrations activate from the environment: DATABASE_URL enables
history, POSTMARK_API_KEY enables sending, TRACKING_SECRET enables
open/click tracking, and APOLLO_API_KEY upgrades LinkedIn enrichment
from URL parsing to Apollo people matches.`,
	RunE: runServe,
}

var (
	serveConfigPath  string
	serveAddr        string
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(serveConfigPath)
	if err != nil {
		return err
	}

	client, err := buildClient(&cfg, "", "")
	if err != nil {
		return err
	}

	ctx := context.Background()

	databaseURL := serveDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	store, err := db.ConnectOptional(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if store != nil {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("History store connected")
	}

	var tokens *delivery.TokenService
	if os.Getenv("TRACKING_SECRET") != "" {
		trackingCfg, err := config.NewTrackingConfig()
		if err != nil {
			return err
		}
		tokens = delivery.NewTokenService(trackingCfg)
		log.Println("Tracking tokens enabled")
	}

	var sender *delivery.Sender
	if apiKey := os.Getenv("POSTMARK_API_KEY"); apiKey != "" {
		fromEmail := os.Getenv("POSTMARK_FROM_EMAIL")
		if fromEmail == "" {
			return fmt.Errorf("POSTMARK_FROM_EMAIL is required when POSTMARK_API_KEY is set")
		}

		var opts []delivery.SenderOption
		if tokens != nil {
			trackingBase := os.Getenv("TRACKING_BASE_URL")
			if trackingBase == "" {
				return fmt.Errorf("TRACKING_BASE_URL is required when tracking is enabled for delivery")
			}
			opts = append(opts, delivery.WithTracking(tokens, trackingBase))
		}
		sender, err = delivery.NewSender(apiKey, fromEmail, opts...)
		if err != nil {
			return err
		}
		log.Println("Postmark delivery enabled")
	}

	// Without an Apollo key the enricher still parses profile URL structure.
	enricher := enrich.NewEnricher(os.Getenv("APOLLO_API_KEY"))

	srv, err := server.New(server.Config{
		Addr:     serveAddr,
		App:      &cfg,
		Client:   client,
		Store:    store,
		Tokens:   tokens,
		Sender:   sender,
		Enricher: enricher,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
