package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/observability"
	"github.com/shegge-stack/EmailGenerator/internal/quality"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run quality analysis over an existing email",
	Long: `Analyze email content without generating anything: word count, spam
risk, call-to-action and personalization checks, with recommendations.

Content comes from --subject/--body flags or from --file. A file whose
first line starts with "Subject:" contributes the subject too.`,
	RunE: runValidate,
}

var (
	validateSubject string
	validateBody    string
	validateFile    string
)

func init() {
	validateCmd.Flags().StringVar(&validateSubject, "subject", "", "Email subject line")
	validateCmd.Flags().StringVar(&validateBody, "body", "", "Email body text")
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to a file holding the email")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	subject := validateSubject
	body := validateBody

	if validateFile != "" {
		if body != "" {
			return fmt.Errorf("--file and --body are mutually exclusive")
		}
		data, err := os.ReadFile(validateFile)
		if err != nil {
			return fmt.Errorf("failed to read email file: %w", err)
		}
		subject, body = splitEmailFile(string(data))
		if validateSubject != "" {
			subject = validateSubject
		}
	}
	if body == "" {
		return fmt.Errorf("email content is required (--body or --file)")
	}

	analysis := quality.Analyze(subject, body, nil)
	observability.NewPrinter(os.Stdout).PrintQuality(analysis)
	return nil
}

// splitEmailFile separates a leading "Subject:" line from the body.
func splitEmailFile(content string) (subject, body string) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "Subject:") {
		return "", content
	}
	line, rest, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(strings.TrimPrefix(line, "Subject:")), strings.TrimSpace(rest)
}
