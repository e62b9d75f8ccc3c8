package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

func sampleProspect() *types.Prospect {
	return &types.Prospect{
		FirstName:      "Jane",
		LastName:       "Doe",
		CompanyName:    "Acme Robotics",
		CompanyWebsite: "https://acme.example.com",
		Activity:       "Raised a Series B and announced a hiring push",
		LinkedInURL:    "https://linkedin.com/in/janedoe",
		CaseStudy:      "We helped a fintech company increase ARR by 30% in 6 months.",
		ICP:            "Series A-C B2B SaaS founders",
		SenderName:     "Sam Seller",
		SenderTitle:    "Account Executive",
		SenderCompany:  "GrowthCo",
		OurWebsite:     "https://growthco.example.com",
		MeetingLink:    "https://calendly.com/growthco/demo",
	}
}

func TestComposeStandard(t *testing.T) {
	payload, err := Compose(types.ModeStandard, sampleProspect(), Options{})
	require.NoError(t, err)

	assert.Contains(t, payload, "sales development representative")
	assert.Contains(t, payload, "Jane Doe")
	assert.Contains(t, payload, "Acme Robotics")
	assert.Contains(t, payload, "https://calendly.com/growthco/demo")
	assert.NotContains(t, payload, "{{.", "no placeholder may survive substitution")
	assert.NotContains(t, payload, "<outreach_analysis>")
}

func TestComposeDeterministic(t *testing.T) {
	a, err := Compose(types.ModeEnhanced, sampleProspect(), Options{})
	require.NoError(t, err)
	b, err := Compose(types.ModeEnhanced, sampleProspect(), Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComposeEnhancedSuffixAndDefaults(t *testing.T) {
	payload, err := Compose(types.ModeEnhanced, sampleProspect(), Options{})
	require.NoError(t, err)

	assert.Contains(t, payload, "<outreach_analysis>")
	assert.Contains(t, payload, "<email>")
	// Optional fields fall back to generic defaults.
	assert.Contains(t, payload, "Industry: Technology")
	assert.Contains(t, payload, "Title: Decision Maker")
}

func TestComposeSequenceSteps(t *testing.T) {
	payload, err := Compose(types.ModeSequence, sampleProspect(), Options{Steps: 5})
	require.NoError(t, err)
	assert.Contains(t, payload, "exactly 5 emails")
	assert.Contains(t, payload, `<email step="N">`)

	payload, err = Compose(types.ModeSequence, sampleProspect(), Options{})
	require.NoError(t, err)
	assert.Contains(t, payload, "exactly 3 emails")
}

func TestComposeMissingFieldFails(t *testing.T) {
	p := sampleProspect()
	p.MeetingLink = ""

	_, err := Compose(types.ModeStandard, p, Options{})
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "MeetingLink", missing.Placeholder)
}

func TestComposeEscapesMarkerCollisions(t *testing.T) {
	p := sampleProspect()
	p.Activity = `Posted "<email step="1"> is my favorite tag" on LinkedIn`

	payload, err := Compose(types.ModeSequence, p, Options{})
	require.NoError(t, err)

	// The only literal step markers left are the instruction suffix's.
	assert.NotContains(t, payload, `<email step="1">`)
	assert.Contains(t, payload, `&lt;email step="1">`)
}

func TestComposeStyleReplacesInstructions(t *testing.T) {
	payload, err := Compose(types.ModeStandard, sampleProspect(), Options{Style: "pattern_interrupt"})
	require.NoError(t, err)

	assert.Contains(t, payload, "pattern interrupts")
	assert.Contains(t, payload, "Follow the style instructions precisely")

	_, err = Compose(types.ModeStandard, sampleProspect(), Options{Style: "nope"})
	assert.Error(t, err)
}

func TestComposeNonStandardModesIgnoreStyle(t *testing.T) {
	// Callers forward the configured default style on every mode; enhanced
	// and sequence composes must keep working and keep their own
	// instruction blocks.
	styled, err := Compose(types.ModeEnhanced, sampleProspect(), Options{Style: "pattern_interrupt"})
	require.NoError(t, err)
	plain, err := Compose(types.ModeEnhanced, sampleProspect(), Options{})
	require.NoError(t, err)
	assert.Equal(t, plain, styled)

	styled, err = Compose(types.ModeSequence, sampleProspect(), Options{Style: "pattern_interrupt"})
	require.NoError(t, err)
	assert.Contains(t, styled, `<email step="N">`)
	assert.NotContains(t, styled, "pattern interrupts")
}

func TestComposeToneGuidance(t *testing.T) {
	payload, err := Compose(types.ModeStandard, sampleProspect(), Options{Tone: "warm", Length: "short"})
	require.NoError(t, err)
	assert.Contains(t, payload, "Tone: warm")
	assert.Contains(t, payload, "Length: short")
}

func TestComposeCustomTemplate(t *testing.T) {
	payload, err := Compose(types.ModeStandard, sampleProspect(), Options{
		DynamicTemplate: "Write to {{.FirstName}} at {{.CompanyName}}.",
	})
	require.NoError(t, err)
	assert.Contains(t, payload, "Write to Jane at Acme Robotics.")

	_, err = Compose(types.ModeStandard, sampleProspect(), Options{
		DynamicTemplate: "Write to {{.FistName}}.",
	})
	var unknown *UnknownPlaceholderError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "FistName", unknown.Placeholder)
}

func TestEscapeMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<email>", "&lt;email>"},
		{"</email>", "&lt;/email>"},
		{"<OUTREACH_ANALYSIS>", "&lt;OUTREACH_ANALYSIS>"},
		{"emailed them", "emailed them"},
		{"a <b> tag stays", "a <b> tag stays"},
	}
	for _, tt := range tests {
		if got := EscapeMarkers(tt.in); got != tt.want {
			t.Errorf("EscapeMarkers(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyleByName(t *testing.T) {
	for _, name := range StyleNames() {
		style, err := StyleByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, style.Name)
		assert.NotEmpty(t, style.Instructions)
		assert.NotEmpty(t, style.Description)
	}
	assert.Len(t, StyleNames(), 5)

	_, err := StyleByName("sales_robot")
	assert.Error(t, err)
}

func TestVerifyTemplate(t *testing.T) {
	require.NoError(t, VerifyTemplate("{{.FirstName}} {{.Industry}}"))
	err := VerifyTemplate("{{.Salary}}")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Salary"))
}
