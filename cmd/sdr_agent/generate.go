package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/observability"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one personalized outreach email",
	Long: `Generate a single cold outreach email for a prospect.

The prospect can be described with flags or loaded from a JSON file with
--json (flags override file values). Enhanced mode runs a research pass
first and attaches quality analysis to the result.`,
	RunE: runGenerate,
}

var (
	generateProspect   prospectFlags
	generateConfigPath string
	generateStyle      string
	generateTemplate   string
	generateEnhanced   bool
	generateAnalysis   bool
	generateModel      string
	generateProvider   string
	generateOutput     string
	generateSave       bool
	generateVerbose    bool
)

func init() {
	generateProspect.register(generateCmd)

	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Email writing style (see 'sdr_agent styles')")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Path to a custom prompt template file")
	generateCmd.Flags().BoolVarP(&generateEnhanced, "enhanced", "e", false, "Use enhanced mode with prospect analysis")
	generateCmd.Flags().BoolVar(&generateAnalysis, "include-analysis", false, "Alias for --enhanced")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Model override for this run")
	generateCmd.Flags().StringVarP(&generateProvider, "provider", "p", "", "Provider override: openai, openrouter, or mock")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the email to this file")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save the email under the configured output directory")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print pipeline steps and the prospect summary")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(generateConfigPath)
	if err != nil {
		return err
	}

	client, err := buildClient(&cfg, generateProvider, generateModel)
	if err != nil {
		return err
	}

	prospect, err := generateProspect.build()
	if err != nil {
		return err
	}

	mode := types.ModeStandard
	if generateEnhanced || generateAnalysis {
		mode = types.ModeEnhanced
	}

	opts := outreach.Options{
		Mode:   mode,
		Style:  firstNonEmpty(generateStyle, cfg.Email.Style),
		Tone:   cfg.Email.Tone,
		Length: cfg.Email.Length,
		Quiet:  !generateVerbose && !cfg.Logging.Verbose,
	}
	if generateTemplate != "" {
		data, err := os.ReadFile(generateTemplate)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		opts.DynamicTemplate = string(data)
	}

	gen := outreach.NewGenerator(client)
	result, err := gen.GenerateEmail(context.Background(), prospect, opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if generateVerbose {
		printer.PrintProspect(prospect)
	}

	if cfg.Output.Format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printer.PrintEmail(result)
	}

	if generateOutput != "" {
		content := fmt.Sprintf("Subject: %s\n\n%s\n", result.Subject, result.Body)
		if err := os.WriteFile(generateOutput, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Saved to: %s\n", generateOutput)
	}
	if generateSave || cfg.Output.SaveToFile {
		path, err := outreach.SaveEmail(cfg.Output.OutputDir, prospect, result)
		if err != nil {
			return fmt.Errorf("failed to save email: %w", err)
		}
		fmt.Printf("Saved to: %s\n", path)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
