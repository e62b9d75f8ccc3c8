package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// RequiredColumns are the CSV headers every batch input must carry, in
// canonical output order.
var RequiredColumns = []string{
	"first_name", "last_name", "company_name", "company_website",
	"activity", "linkedin_url", "case_study", "icp",
	"sender_name", "sender_title", "sender_company", "our_website",
	"meeting_link",
}

// OptionalColumns may appear in batch input and feed enhanced mode.
var OptionalColumns = []string{"industry", "title"}

// ReadProspects parses batch input CSV. The header row is validated
// against RequiredColumns; a missing column is reported by name. Rows are
// returned in file order without field validation, so per-row problems
// surface as batch outcomes rather than aborting the whole file.
func ReadProspects(r io.Reader) ([]*types.Prospect, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &HeaderError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	var prospects []*types.Prospect
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Cause: err}
		}

		field := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		prospects = append(prospects, &types.Prospect{
			FirstName:      field("first_name"),
			LastName:       field("last_name"),
			CompanyName:    field("company_name"),
			CompanyWebsite: field("company_website"),
			Activity:       field("activity"),
			LinkedInURL:    field("linkedin_url"),
			CaseStudy:      field("case_study"),
			ICP:            field("icp"),
			SenderName:     field("sender_name"),
			SenderTitle:    field("sender_title"),
			SenderCompany:  field("sender_company"),
			OurWebsite:     field("our_website"),
			MeetingLink:    field("meeting_link"),
			Industry:       field("industry"),
			Title:          field("title"),
		})
	}

	return prospects, nil
}

// WriteEmailResults writes one output row per outcome, in input order:
// the prospect columns followed by status, subject, body, error.
func WriteEmailResults(w io.Writer, outcomes []Outcome) error {
	writer := csv.NewWriter(w)

	header := append(prospectHeader(), "status", "subject", "body", "error")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range outcomes {
		row := prospectRow(o.Prospect)
		if o.Err != nil {
			row = append(row, "failed", "", "", o.Err.Error())
		} else {
			row = append(row, "success", o.Email.Subject, o.Email.Body, "")
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", o.RowIndex+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSequenceResults writes one output row per outcome with a
// step_N_subject/step_N_body column pair for every step position present
// in any outcome.
func WriteSequenceResults(w io.Writer, outcomes []Outcome) error {
	writer := csv.NewWriter(w)

	maxSteps := 0
	for _, o := range outcomes {
		if o.Sequence != nil && len(o.Sequence.Steps) > maxSteps {
			maxSteps = len(o.Sequence.Steps)
		}
	}

	header := append(prospectHeader(), "status")
	for n := 1; n <= maxSteps; n++ {
		header = append(header, fmt.Sprintf("step_%d_subject", n), fmt.Sprintf("step_%d_body", n))
	}
	header = append(header, "error")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range outcomes {
		row := prospectRow(o.Prospect)
		if o.Err != nil {
			row = append(row, "failed")
			for n := 0; n < maxSteps; n++ {
				row = append(row, "", "")
			}
			row = append(row, o.Err.Error())
		} else {
			row = append(row, "success")
			for n := 0; n < maxSteps; n++ {
				if n < len(o.Sequence.Steps) {
					row = append(row, o.Sequence.Steps[n].Subject, o.Sequence.Steps[n].Body)
				} else {
					row = append(row, "", "")
				}
			}
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", o.RowIndex+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func prospectHeader() []string {
	header := make([]string, 0, len(RequiredColumns)+len(OptionalColumns))
	header = append(header, RequiredColumns...)
	header = append(header, OptionalColumns...)
	return header
}

func prospectRow(p *types.Prospect) []string {
	if p == nil {
		return make([]string, len(RequiredColumns)+len(OptionalColumns))
	}
	return []string{
		p.FirstName, p.LastName, p.CompanyName, p.CompanyWebsite,
		p.Activity, p.LinkedInURL, p.CaseStudy, p.ICP,
		p.SenderName, p.SenderTitle, p.SenderCompany, p.OurWebsite,
		p.MeetingLink, p.Industry, p.Title,
	}
}
