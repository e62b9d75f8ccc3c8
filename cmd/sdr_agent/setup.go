package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shegge-stack/EmailGenerator/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively scaffold config.yaml and .env",
	Long: `Walk through initial setup: pick a provider and model, write a
config.yaml, and scaffold a .env with the secret names the tool reads.
Secrets themselves are never written to config.yaml; an API key entered
for server auth is stored only as a bcrypt hash.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	ask := func(prompt, fallback string) string {
		if fallback != "" {
			fmt.Printf("%s [%s]: ", prompt, fallback)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}
		return line
	}

	cfg := config.DefaultConfig()

	provider := ask("Model provider (openai/openrouter/mock)", cfg.ModelProvider)
	cfg.ModelProvider = provider
	switch provider {
	case "openai", "mock":
		cfg.Providers.OpenAI.Model = ask("Model", cfg.Providers.OpenAI.Model)
	case "openrouter":
		cfg.Providers.OpenRouter.Model = ask("Model", cfg.Providers.OpenRouter.Model)
	default:
		return fmt.Errorf("unknown provider %q", provider)
	}

	cfg.Email.Style = ask("Default email style", cfg.Email.Style)
	cfg.API.Addr = ask("API listen address", cfg.API.Addr)

	if strings.EqualFold(ask("Protect the API with a key? (y/N)", "n"), "y") {
		key := ask("API key to hash (input is stored only as a bcrypt hash)", "")
		if key != "" {
			keyConfig, err := config.NewKeyConfig()
			if err != nil {
				return err
			}
			hash, err := keyConfig.HashKey(key)
			if err != nil {
				return err
			}
			cfg.API.KeyHash = hash
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := writeIfAbsent(config.DefaultConfigFile, marshalConfig(cfg)); err != nil {
		return err
	}
	if err := writeIfAbsent(".env", envTemplate); err != nil {
		return err
	}

	fmt.Println("\nSetup complete. Fill in the secrets in .env before generating.")
	return nil
}

func marshalConfig(cfg config.Config) []byte {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		// Config is a plain struct; marshaling cannot realistically fail.
		return nil
	}
	return data
}

// writeIfAbsent refuses to overwrite an existing file.
func writeIfAbsent(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Skipping %s (already exists)\n", path)
		return nil
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// envTemplate lists every secret the tool reads. Values are left blank on
// purpose; secrets live only in the environment.
var envTemplate = []byte(`# Model provider credentials (set the one matching config.yaml)
OPENAI_API_KEY=
OPENROUTER_API_KEY=

# Prospect enrichment (optional)
APOLLO_API_KEY=

# Email delivery (optional)
POSTMARK_API_KEY=
POSTMARK_FROM_EMAIL=

# Open/click tracking (optional; TRACKING_BASE_URL is the public server URL)
TRACKING_SECRET=
TRACKING_BASE_URL=
TRACKING_EXPIRATION_HOURS=720

# CRM sync (optional)
HUBSPOT_PRIVATE_APP_TOKEN=

# Generation history (optional)
DATABASE_URL=
`)
