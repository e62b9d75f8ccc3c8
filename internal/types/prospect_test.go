//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProspect() Prospect {
	return Prospect{
		FirstName:      "Jane",
		LastName:       "Smith",
		CompanyName:    "TechCo",
		CompanyWebsite: "https://techco.com",
		Activity:       "Expanding to EMEA",
		LinkedInURL:    "https://linkedin.com/in/janesmith",
		CaseStudy:      "We helped a fintech company increase ARR by 30% in 6 months.",
		ICP:            "B2B SaaS companies",
		SenderName:     "Alex Carter",
		SenderTitle:    "Account Executive",
		SenderCompany:  "GrowthWorks",
		OurWebsite:     "https://growthworks.io",
		MeetingLink:    "https://calendly.com/growthworks/demo",
	}
}

func TestProspect_Validate(t *testing.T) {
	p := validProspect()
	require.NoError(t, p.Validate())
}

func TestProspect_Validate_OptionalFieldsMayBeEmpty(t *testing.T) {
	p := validProspect()
	p.Industry = ""
	p.Title = ""
	assert.NoError(t, p.Validate())
}

func TestProspect_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Prospect)
		wantField string
	}{
		{"missing first name", func(p *Prospect) { p.FirstName = "" }, "first_name"},
		{"missing last name", func(p *Prospect) { p.LastName = "" }, "last_name"},
		{"missing company name", func(p *Prospect) { p.CompanyName = "" }, "company_name"},
		{"missing company website", func(p *Prospect) { p.CompanyWebsite = "" }, "company_website"},
		{"missing activity", func(p *Prospect) { p.Activity = "" }, "activity"},
		{"missing linkedin url", func(p *Prospect) { p.LinkedInURL = "" }, "linkedin_url"},
		{"missing case study", func(p *Prospect) { p.CaseStudy = "" }, "case_study"},
		{"missing icp", func(p *Prospect) { p.ICP = "" }, "icp"},
		{"missing sender name", func(p *Prospect) { p.SenderName = "" }, "sender_name"},
		{"missing sender title", func(p *Prospect) { p.SenderTitle = "" }, "sender_title"},
		{"missing sender company", func(p *Prospect) { p.SenderCompany = "" }, "sender_company"},
		{"missing our website", func(p *Prospect) { p.OurWebsite = "" }, "our_website"},
		{"missing meeting link", func(p *Prospect) { p.MeetingLink = "" }, "meeting_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProspect()
			tt.mutate(&p)

			err := p.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestProspect_Validate_WhitespaceOnlyIsMissing(t *testing.T) {
	p := validProspect()
	p.Activity = "   \t  "

	err := p.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "activity", verr.Field)
}

func TestProspect_Validate_ReportsFirstMissingField(t *testing.T) {
	p := validProspect()
	p.FirstName = ""
	p.MeetingLink = ""

	err := p.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "first_name", verr.Field)
}

func TestProspect_Normalize(t *testing.T) {
	p := Prospect{FirstName: "  Jane ", LastName: "\tSmith\n", Industry: " Fintech "}
	p.Normalize()

	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, "Fintech", p.Industry)
}

func TestProspect_DisplayName(t *testing.T) {
	p := validProspect()
	assert.Equal(t, "Jane Smith", p.DisplayName())

	p.LastName = ""
	assert.Equal(t, "Jane", p.DisplayName())
}
