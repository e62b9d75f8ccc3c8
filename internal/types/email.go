package types

import "fmt"

// Mode selects the generation style: a single standard email, an enhanced
// email with an analysis block, or a multi-step sequence.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeEnhanced Mode = "enhanced"
	ModeSequence Mode = "sequence"
)

// ParseMode converts a user-supplied mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeEnhanced, ModeSequence:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected standard, enhanced, or sequence)", s)
	}
}

// EmailResult is the parsed outcome of a single-email generation.
// RawText always carries the provider's unmodified output so a degraded
// parse never loses the response.
type EmailResult struct {
	Subject  string         `json:"subject"`
	Body     string         `json:"body"`
	Analysis string         `json:"analysis,omitempty"`
	Quality  *EmailAnalysis `json:"quality,omitempty"`
	RawText  string         `json:"raw_text"`
}

// SequenceStep is one email within a multi-step outreach sequence,
// numbered in document order starting at 1.
type SequenceStep struct {
	Step    int    `json:"step"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SequenceResult is the parsed outcome of a sequence generation.
type SequenceResult struct {
	Steps   []SequenceStep `json:"steps"`
	RawText string         `json:"raw_text"`
}

// EmailAnalysis holds heuristic quality signals for a generated email.
type EmailAnalysis struct {
	WordCount       int      `json:"word_count"`
	SubjectLength   int      `json:"subject_length"`
	Personalization bool     `json:"personalization"`
	HasCallToAction bool     `json:"has_call_to_action"`
	SpamRisk        string   `json:"spam_risk"`
	Recommendations []string `json:"recommendations,omitempty"`
}
