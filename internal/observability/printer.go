// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRecommendationsToShow is the default number of quality
	// recommendations to display
	maxRecommendationsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProspect outputs a human-readable summary of the prospect record
// a generation will run against.
func (p *Printer) PrintProspect(prospect *types.Prospect) {
	if prospect == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Prospect: %s %s\n", prospect.FirstName, prospect.LastName))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", prospect.CompanyName))
	if prospect.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", prospect.Title))
	}
	if prospect.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", prospect.Industry))
	}
	sb.WriteString(fmt.Sprintf("Website:  %s\n", prospect.CompanyWebsite))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Sender:   %s, %s @ %s",
		prospect.SenderName, prospect.SenderTitle, prospect.SenderCompany))

	p.printBox("PROSPECT RECORD", sb.String())
}

// PrintEmail outputs a generated email with its quality signals when
// present.
func (p *Printer) PrintEmail(email *types.EmailResult) {
	if email == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject: %s\n", email.Subject))
	sb.WriteString("\n")
	sb.WriteString(email.Body)

	p.printBox("GENERATED EMAIL", strings.TrimSuffix(sb.String(), "\n"))

	if email.Analysis != "" {
		p.printBox("OUTREACH ANALYSIS", strings.TrimSpace(email.Analysis))
	}
	if email.Quality != nil {
		p.PrintQuality(email.Quality)
	}
}

// PrintQuality outputs heuristic quality signals for a generated email.
func (p *Printer) PrintQuality(quality *types.EmailAnalysis) {
	if quality == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Words:            %d\n", quality.WordCount))
	sb.WriteString(fmt.Sprintf("Subject length:   %d\n", quality.SubjectLength))
	sb.WriteString(fmt.Sprintf("Personalization:  %s\n", yesNo(quality.Personalization)))
	sb.WriteString(fmt.Sprintf("Call to action:   %s\n", yesNo(quality.HasCallToAction)))
	sb.WriteString(fmt.Sprintf("Spam risk:        %s", quality.SpamRisk))

	if len(quality.Recommendations) > 0 {
		sb.WriteString("\n\nRecommendations:\n")
		count := min(len(quality.Recommendations), maxRecommendationsToShow)
		for i := 0; i < count; i++ {
			rec := quality.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		if len(quality.Recommendations) > maxRecommendationsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n",
				len(quality.Recommendations)-maxRecommendationsToShow))
		}
	}

	p.printBox("QUALITY ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSequence outputs each step of a generated sequence.
func (p *Printer) PrintSequence(sequence *types.SequenceResult) {
	if sequence == nil || len(sequence.Steps) == 0 {
		return
	}

	for _, step := range sequence.Steps {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Subject: %s\n", step.Subject))
		sb.WriteString("\n")
		sb.WriteString(step.Body)
		p.printBox(fmt.Sprintf("EMAIL %d of %d", step.Step, len(sequence.Steps)),
			strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintBatchSummary outputs the outcome counts of a batch run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchSummary(total, succeeded, failed int) {
	if failed == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4,
			fmt.Sprintf("✅ ALL %d PROSPECTS SUCCEEDED", total))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Prospects: %d\n", total))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", succeeded))
	sb.WriteString(fmt.Sprintf("Failed:    %d", failed))

	p.printBox("BATCH SUMMARY", sb.String())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
