package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/config"
)

var modelsCmd = &cobra.Command{
	Use:     "list-models",
	Aliases: []string{"models"},
	Short:   "List the configured models per provider",
	RunE:    runModels,
}

var modelsConfigPath string

func init() {
	modelsCmd.Flags().StringVar(&modelsConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(modelsConfigPath)
	if err != nil {
		return err
	}

	fmt.Printf("Active provider: %s\n\n", cfg.ModelProvider)
	printProvider("openai", cfg.Providers.OpenAI, cfg.ModelProvider == "openai")
	printProvider("openrouter", cfg.Providers.OpenRouter, cfg.ModelProvider == "openrouter")
	return nil
}

func printProvider(name string, settings config.ProviderSettings, active bool) {
	marker := " "
	if active {
		marker = "*"
	}
	fmt.Printf("%s %s (default: %s)\n", marker, name, settings.Model)
	for _, model := range settings.AvailableModels {
		fmt.Printf("    %s\n", model)
	}
	fmt.Println()
}
