// Package main provides the sdr_agent command line tool and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sdr_agent",
	Short: "SDR Email Generator",
	Long:  "SDR Email Generator writes personalized cold outreach emails and multi-step sequences from prospect research, with batch processing, quality analysis, delivery, and a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
