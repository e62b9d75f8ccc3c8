package outreach

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// unsafeFilenameRe matches characters stripped from output filenames.
var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// EmailFilename returns the output filename for a prospect's email:
// {first}_{last}_{company}.txt with spaces replaced and unsafe characters
// removed.
func EmailFilename(prospect *types.Prospect) string {
	return sanitizeFilename(fmt.Sprintf("%s_%s_%s", prospect.FirstName, prospect.LastName, prospect.CompanyName)) + ".txt"
}

// SequenceFilename returns the output filename for a prospect's sequence.
func SequenceFilename(prospect *types.Prospect) string {
	return sanitizeFilename(fmt.Sprintf("%s_%s_%s_sequence", prospect.FirstName, prospect.LastName, prospect.CompanyName)) + ".txt"
}

// SaveEmail writes a generated email under outputDir, creating the
// directory if needed. Returns the written path.
func SaveEmail(outputDir string, prospect *types.Prospect, result *types.EmailResult) (string, error) {
	return save(outputDir, EmailFilename(prospect), renderEmail(result))
}

// SaveSequence writes a generated sequence under outputDir.
func SaveSequence(outputDir string, prospect *types.Prospect, result *types.SequenceResult) (string, error) {
	return save(outputDir, SequenceFilename(prospect), renderSequence(result))
}

// renderEmail formats a parsed email for file output. A degraded parse
// with no subject writes the body alone.
func renderEmail(result *types.EmailResult) string {
	var sb strings.Builder
	if result.Subject != "" {
		sb.WriteString("Subject: ")
		sb.WriteString(result.Subject)
		sb.WriteString("\n\n")
	}
	sb.WriteString(result.Body)
	sb.WriteString("\n")
	return sb.String()
}

// renderSequence formats a parsed sequence for file output.
func renderSequence(result *types.SequenceResult) string {
	var sb strings.Builder
	for i, step := range result.Steps {
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
		}
		fmt.Fprintf(&sb, "Step %d\nSubject: %s\n\n%s\n", step.Step, step.Subject, step.Body)
	}
	return sb.String()
}

func save(outputDir, filename, content string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return path, nil
}

// sanitizeFilename replaces spaces with underscores and strips characters
// that are unsafe in filenames.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameRe.ReplaceAllString(name, "")
}
