package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/config"
	"github.com/shegge-stack/EmailGenerator/internal/llm"
	"github.com/shegge-stack/EmailGenerator/internal/schemas"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// Demo defaults applied when a prospect field is left blank. They keep
// quick experiments to a single flag or two instead of thirteen.
const (
	defaultCaseStudy   = "We helped a fintech company increase ARR by 30% in 6 months."
	defaultMeetingLink = "https://calendly.com/yourcompany/demo"
)

// loadAppConfig loads config.yaml (the given path, or the default file in
// the working directory when it exists) merged over built-in defaults.
func loadAppConfig(path string) (config.Config, error) {
	defaults := config.DefaultConfig()

	if path == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			path = config.DefaultConfigFile
		}
	}
	if path == "" {
		return defaults, nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	merged := loaded.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// buildClient constructs the generation client from the app config plus
// optional provider/model overrides. Credentials are resolved from the
// environment inside the llm package and never pass through here.
func buildClient(cfg *config.Config, providerOverride, modelOverride string) (llm.Client, error) {
	if providerOverride != "" {
		cfg.ModelProvider = providerOverride
	}

	provider, err := llm.ParseProvider(cfg.ModelProvider)
	if err != nil {
		return nil, err
	}

	settings := cfg.ActiveProvider()
	model := settings.Model
	if modelOverride != "" {
		model = modelOverride
	}

	return llm.NewClient(&llm.Config{
		Provider:     provider,
		Model:        model,
		Temperature:  settings.Temperature,
		MaxTokens:    settings.MaxTokens,
		BaseURL:      settings.BaseURL,
		SiteURL:      settings.SiteURL,
		AppName:      settings.AppName,
		OutputFormat: llm.OutputFormat(cfg.Output.Format),
	})
}

// prospectFlags collects the per-prospect flag values shared by the
// generate and sequence commands.
type prospectFlags struct {
	jsonPath string

	firstName      string
	lastName       string
	companyName    string
	companyWebsite string
	activity       string
	linkedinURL    string
	caseStudy      string
	icp            string
	senderName     string
	senderTitle    string
	senderCompany  string
	ourWebsite     string
	meetingLink    string
	industry       string
	title          string
}

func (f *prospectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.jsonPath, "json", "j", "", "Path to a prospect JSON file (flags override file values)")

	cmd.Flags().StringVarP(&f.firstName, "first-name", "f", "", "Prospect first name")
	cmd.Flags().StringVarP(&f.lastName, "last-name", "l", "", "Prospect last name")
	cmd.Flags().StringVarP(&f.companyName, "company", "c", "", "Prospect company name")
	cmd.Flags().StringVarP(&f.companyWebsite, "website", "w", "", "Prospect company website")
	cmd.Flags().StringVarP(&f.activity, "activity", "a", "", "Recent prospect activity to reference")
	cmd.Flags().StringVar(&f.linkedinURL, "linkedin", "", "Prospect LinkedIn profile URL")
	cmd.Flags().StringVar(&f.caseStudy, "case-study", "", "Case study to lead with")
	cmd.Flags().StringVar(&f.icp, "icp", "", "Ideal customer profile description")
	cmd.Flags().StringVar(&f.senderName, "sender-name", "", "Sender full name")
	cmd.Flags().StringVar(&f.senderTitle, "sender-title", "", "Sender job title")
	cmd.Flags().StringVar(&f.senderCompany, "sender-company", "", "Sender company name")
	cmd.Flags().StringVar(&f.ourWebsite, "our-website", "", "Sender company website")
	cmd.Flags().StringVar(&f.meetingLink, "meeting-link", "", "Scheduling link for the call to action")
	cmd.Flags().StringVarP(&f.industry, "industry", "i", "", "Prospect industry (enhanced mode)")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Prospect job title (enhanced mode)")
}

// build assembles the prospect: JSON file first (schema-validated), then
// explicit flags, then the demo defaults for the two fields that have one.
func (f *prospectFlags) build() (*types.Prospect, error) {
	var prospect types.Prospect

	if f.jsonPath != "" {
		if err := schemas.ValidateProspectFile(f.jsonPath); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return nil, fmt.Errorf("prospect file does not validate against schema: %w", err)
			}
			// Schema not locatable from this working directory; field
			// validation still runs before generation.
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate prospect against schema: %v\n", err)
		}

		data, err := os.ReadFile(f.jsonPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read prospect file: %w", err)
		}
		if err := json.Unmarshal(data, &prospect); err != nil {
			return nil, fmt.Errorf("failed to parse prospect JSON: %w", err)
		}
	}

	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&prospect.FirstName, f.firstName)
	set(&prospect.LastName, f.lastName)
	set(&prospect.CompanyName, f.companyName)
	set(&prospect.CompanyWebsite, f.companyWebsite)
	set(&prospect.Activity, f.activity)
	set(&prospect.LinkedInURL, f.linkedinURL)
	set(&prospect.CaseStudy, f.caseStudy)
	set(&prospect.ICP, f.icp)
	set(&prospect.SenderName, f.senderName)
	set(&prospect.SenderTitle, f.senderTitle)
	set(&prospect.SenderCompany, f.senderCompany)
	set(&prospect.OurWebsite, f.ourWebsite)
	set(&prospect.MeetingLink, f.meetingLink)
	set(&prospect.Industry, f.industry)
	set(&prospect.Title, f.title)

	if prospect.CaseStudy == "" {
		prospect.CaseStudy = defaultCaseStudy
	}
	if prospect.MeetingLink == "" {
		prospect.MeetingLink = defaultMeetingLink
	}

	prospect.Normalize()
	return &prospect, nil
}
