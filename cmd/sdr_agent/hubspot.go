package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/crm"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
)

var hubspotCmd = &cobra.Command{
	Use:   "hubspot",
	Short: "Sync with HubSpot: list contacts or enroll one in a generated sequence",
	Long: `Pull contacts from HubSpot or push outreach back. Requires
HUBSPOT_PRIVATE_APP_TOKEN in the environment.

Without flags the command lists contacts. With --enroll, a sequence is
generated for the prospect described by the usual flags, created in
HubSpot, and the contact is enrolled, with a note logged on the record.`,
	RunE: runHubSpot,
}

var (
	hubspotProspect   prospectFlags
	hubspotConfigPath string
	hubspotLimit      int
	hubspotEnroll     string
	hubspotSteps      int
	hubspotModel      string
	hubspotProvider   string
)

func init() {
	hubspotProspect.register(hubspotCmd)

	hubspotCmd.Flags().StringVar(&hubspotConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	hubspotCmd.Flags().IntVar(&hubspotLimit, "limit", 0, "Maximum contacts to list (default 100)")
	hubspotCmd.Flags().StringVar(&hubspotEnroll, "enroll", "", "HubSpot contact ID to enroll in a generated sequence")
	hubspotCmd.Flags().IntVar(&hubspotSteps, "steps", 3, "Number of emails in the generated sequence")
	hubspotCmd.Flags().StringVarP(&hubspotModel, "model", "m", "", "Model override for this run")
	hubspotCmd.Flags().StringVarP(&hubspotProvider, "provider", "p", "", "Provider override: openai, openrouter, or mock")

	rootCmd.AddCommand(hubspotCmd)
}

func runHubSpot(_ *cobra.Command, _ []string) error {
	client, err := crm.NewClient(os.Getenv("HUBSPOT_PRIVATE_APP_TOKEN"))
	if err != nil {
		return fmt.Errorf("HUBSPOT_PRIVATE_APP_TOKEN environment variable is required")
	}

	ctx := context.Background()

	if hubspotEnroll == "" {
		contacts, err := client.ListContacts(ctx, hubspotLimit)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			fmt.Println("No contacts found.")
			return nil
		}
		for _, c := range contacts {
			fmt.Printf("%-12s  %-25s  %-25s  %s\n",
				c.ID, c.Prospect.DisplayName(), c.Prospect.CompanyName, c.Prospect.Title)
		}
		return nil
	}

	cfg, err := loadAppConfig(hubspotConfigPath)
	if err != nil {
		return err
	}
	model, err := buildClient(&cfg, hubspotProvider, hubspotModel)
	if err != nil {
		return err
	}

	prospect, err := hubspotProspect.build()
	if err != nil {
		return err
	}

	gen := outreach.NewGenerator(model)
	sequence, err := gen.GenerateSequence(ctx, prospect, outreach.Options{
		Tone:   cfg.Email.Tone,
		Length: cfg.Email.Length,
		Steps:  hubspotSteps,
		Quiet:  true,
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("Outreach: %s at %s", prospect.DisplayName(), prospect.CompanyName)
	sequenceID, err := client.CreateSequence(ctx, name, sequence.Steps)
	if err != nil {
		return fmt.Errorf("failed to create sequence: %w", err)
	}
	if err := client.EnrollContact(ctx, hubspotEnroll, sequenceID); err != nil {
		return fmt.Errorf("failed to enroll contact: %w", err)
	}

	note := fmt.Sprintf("Enrolled in generated outreach sequence %q (%d steps).", name, len(sequence.Steps))
	if err := client.LogGenerationNote(ctx, hubspotEnroll, note); err != nil {
		return fmt.Errorf("failed to log note: %w", err)
	}

	fmt.Printf("Enrolled contact %s in sequence %s (%d steps)\n", hubspotEnroll, sequenceID, len(sequence.Steps))
	return nil
}
