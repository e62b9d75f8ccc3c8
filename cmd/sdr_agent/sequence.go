package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/observability"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Generate a multi-step outreach sequence",
	Long:  "Generate a sequence of follow-up emails for a prospect, each step building on the previous touch.",
	RunE:  runSequence,
}

var (
	sequenceProspect   prospectFlags
	sequenceConfigPath string
	sequenceSteps      int
	sequenceModel      string
	sequenceProvider   string
	sequenceOutput     string
	sequenceSave       bool
	sequenceVerbose    bool
)

func init() {
	sequenceProspect.register(sequenceCmd)

	sequenceCmd.Flags().StringVar(&sequenceConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	sequenceCmd.Flags().IntVar(&sequenceSteps, "steps", 3, "Number of emails in the sequence")
	sequenceCmd.Flags().StringVarP(&sequenceModel, "model", "m", "", "Model override for this run")
	sequenceCmd.Flags().StringVarP(&sequenceProvider, "provider", "p", "", "Provider override: openai, openrouter, or mock")
	sequenceCmd.Flags().StringVarP(&sequenceOutput, "output", "o", "", "Write the sequence to this file")
	sequenceCmd.Flags().BoolVar(&sequenceSave, "save", false, "Save the sequence under the configured output directory")
	sequenceCmd.Flags().BoolVarP(&sequenceVerbose, "verbose", "v", false, "Print pipeline steps and the prospect summary")

	rootCmd.AddCommand(sequenceCmd)
}

func runSequence(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(sequenceConfigPath)
	if err != nil {
		return err
	}

	client, err := buildClient(&cfg, sequenceProvider, sequenceModel)
	if err != nil {
		return err
	}

	prospect, err := sequenceProspect.build()
	if err != nil {
		return err
	}

	opts := outreach.Options{
		Tone:   cfg.Email.Tone,
		Length: cfg.Email.Length,
		Steps:  sequenceSteps,
		Quiet:  !sequenceVerbose && !cfg.Logging.Verbose,
	}

	gen := outreach.NewGenerator(client)
	result, err := gen.GenerateSequence(context.Background(), prospect, opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if sequenceVerbose {
		printer.PrintProspect(prospect)
	}

	if cfg.Output.Format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printer.PrintSequence(result)
	}

	if sequenceOutput != "" {
		var content string
		for i, step := range result.Steps {
			content += fmt.Sprintf("=== Email %d of %d ===\nSubject: %s\n\n%s\n\n", i+1, len(result.Steps), step.Subject, step.Body)
		}
		if err := os.WriteFile(sequenceOutput, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Saved to: %s\n", sequenceOutput)
	}
	if sequenceSave || cfg.Output.SaveToFile {
		path, err := outreach.SaveSequence(cfg.Output.OutputDir, prospect, result)
		if err != nil {
			return fmt.Errorf("failed to save sequence: %w", err)
		}
		fmt.Printf("Saved to: %s\n", path)
	}

	return nil
}
