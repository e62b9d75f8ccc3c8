package parsing

import (
	"errors"
	"testing"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

func TestParseEmailStandard(t *testing.T) {
	raw := "Subject: Quick question about Acme\n\nHi Jane,\n\nSaw the Series B news. Congrats.\n\nBest,\nSam"

	result, err := ParseEmail(types.ModeStandard, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Subject != "Quick question about Acme" {
		t.Errorf("Subject = %q", result.Subject)
	}
	if result.Body != "Hi Jane,\n\nSaw the Series B news. Congrats.\n\nBest,\nSam" {
		t.Errorf("Body = %q", result.Body)
	}
	if result.RawText != raw {
		t.Errorf("RawText must retain the unmodified response")
	}
}

func TestParseEmailMissingSubjectDegrades(t *testing.T) {
	raw := "Hi Jane,\n\nNo subject line here at all."

	result, err := ParseEmail(types.ModeStandard, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Subject != "" {
		t.Errorf("Subject = %q, want empty on missing marker", result.Subject)
	}
	if result.Body != raw {
		t.Errorf("Body = %q, want whole text", result.Body)
	}
}

func TestParseEmailEmptyIsError(t *testing.T) {
	for _, raw := range []string{"", "   \n\t  "} {
		_, err := ParseEmail(types.ModeStandard, raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("ParseEmail(%q) error = %T, want *ParseError", raw, err)
		}
	}
}

func TestParseEmailEnhanced(t *testing.T) {
	raw := "<outreach_analysis>\nPain: scaling outbound.\nAngle: Series B.\n</outreach_analysis>\n\n" +
		"<email>\nSubject: Scaling after the raise\n\nHi Jane,\n\nShort and personal.\n</email>"

	result, err := ParseEmail(types.ModeEnhanced, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Analysis != "Pain: scaling outbound.\nAngle: Series B." {
		t.Errorf("Analysis = %q", result.Analysis)
	}
	if result.Subject != "Scaling after the raise" {
		t.Errorf("Subject = %q", result.Subject)
	}
	if result.Body != "Hi Jane,\n\nShort and personal." {
		t.Errorf("Body = %q", result.Body)
	}
}

func TestParseEmailEnhancedMissingAnalysisIsNotError(t *testing.T) {
	raw := "<email>\nSubject: Hello\n\nBody text.\n</email>"

	result, err := ParseEmail(types.ModeEnhanced, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Analysis != "" {
		t.Errorf("Analysis = %q, want empty", result.Analysis)
	}
	if result.Subject != "Hello" || result.Body != "Body text." {
		t.Errorf("parsed = %q / %q", result.Subject, result.Body)
	}
}

func TestParseEmailEnhancedWithoutEnvelope(t *testing.T) {
	// Models sometimes skip the envelope; the subject/body split still applies.
	raw := "Subject: Hello\n\nBody text."

	result, err := ParseEmail(types.ModeEnhanced, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Subject != "Hello" || result.Body != "Body text." {
		t.Errorf("parsed = %q / %q", result.Subject, result.Body)
	}
}

func TestParseEmailStripsCodeFence(t *testing.T) {
	raw := "```\nSubject: Fenced\n\nThe body.\n```"

	result, err := ParseEmail(types.ModeStandard, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Subject != "Fenced" || result.Body != "The body." {
		t.Errorf("parsed = %q / %q", result.Subject, result.Body)
	}
}

func TestParseEmailSubjectMidSentenceIgnored(t *testing.T) {
	raw := "Hi Jane,\n\nThe email Subject: line convention is interesting."

	result, err := ParseEmail(types.ModeStandard, raw)
	if err != nil {
		t.Fatalf("ParseEmail returned error: %v", err)
	}
	if result.Subject != "" {
		t.Errorf("Subject = %q, want empty (marker mid-sentence is body text)", result.Subject)
	}
}
